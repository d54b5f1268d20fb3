package config

import "regexp"

// BaselineScore is the priority of any file no tier claims.
const BaselineScore = 40

// defaultIgnorePatterns excludes VCS internals, dependency and build
// output directories, lockfiles, compiled artifacts and editor/OS noise.
// These apply on top of whatever a .gitignore at the root excludes.
var defaultIgnorePatterns = []string{
	`^\.git/`,
	`^\.next/`,
	`^node_modules/`,
	`^vendor/`,
	`^dist/`,
	`^build/`,
	`^out/`,
	`^target/`,
	`^bin/`,
	`^obj/`,
	`^\.idea/`,
	`^\.vscode/`,
	`^\.vs/`,
	`^\.settings/`,
	`^\.gradle/`,
	`^\.mvn/`,
	`^\.pytest_cache/`,
	`^__pycache__/`,
	`^\.sass-cache/`,
	`^\.vercel/`,
	`^\.turbo/`,
	`^coverage/`,
	`^test-results/`,
	`\.gitignore`,
	`pnpm-lock\.yaml`,
	`yek\.toml`,
	`yek\.yaml`,
	`package-lock\.json`,
	`yarn\.lock`,
	`Cargo\.lock`,
	`Gemfile\.lock`,
	`composer\.lock`,
	`mix\.lock`,
	`poetry\.lock`,
	`Pipfile\.lock`,
	`packages\.lock\.json`,
	`paket\.lock`,
	`\.pyc$`,
	`\.pyo$`,
	`\.pyd$`,
	`\.class$`,
	`\.o$`,
	`\.obj$`,
	`\.dll$`,
	`\.exe$`,
	`\.so$`,
	`\.dylib$`,
	`\.log$`,
	`\.tmp$`,
	`\.temp$`,
	`\.swp$`,
	`\.swo$`,
	`\.DS_Store$`,
	`Thumbs\.db$`,
	`\.env(\..+)?$`,
	`\.bak$`,
	`~$`,
}

// builtinBinaryExtensions lists file extensions never treated as text, so
// classification can skip reading them entirely.
var builtinBinaryExtensions = []string{
	".jpg", ".pdf", ".mid", ".blend", ".p12", ".rco", ".tgz", ".jpeg",
	".mp4", ".midi", ".crt", ".p7b", ".ovl", ".bz2", ".png", ".webm",
	".aac", ".key", ".gbr", ".mo", ".xz", ".gif", ".mov", ".flac",
	".pem", ".pcb", ".nib", ".dat", ".ico", ".mp3", ".bmp", ".der",
	".icns", ".xap", ".lib", ".webp", ".wav", ".psd", ".png2", ".xdf",
	".psf", ".jar", ".ttf", ".exe", ".ai", ".jp2", ".zip", ".pak",
	".vhd", ".woff", ".dll", ".eps", ".swc", ".rar", ".img3", ".gho",
	".woff2", ".bin", ".raw", ".mso", ".7z", ".img4", ".efi", ".eot",
	".iso", ".tif", ".class", ".gz", ".msi", ".ocx", ".sys", ".img",
	".tiff", ".apk", ".tar", ".cab", ".scr", ".so", ".dmg", ".3ds",
	".com", ".elf", ".o", ".max", ".obj", ".drv", ".rom", ".a",
	".vhdx", ".fbx", ".bpl", ".cpl",
}

// defaultIgnore compiles the built-in ignore list. The patterns are
// constants, so compilation cannot fail.
func defaultIgnore() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(defaultIgnorePatterns))
	for _, pat := range defaultIgnorePatterns {
		res = append(res, regexp.MustCompile(pat))
	}
	return res
}

// defaultPriority returns the built-in tier list: conventional source
// directories score 50, everything else falls back to BaselineScore.
func defaultPriority() []PriorityTier {
	return []PriorityTier{
		{
			Score:    50,
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^src/`)},
		},
	}
}
