package cli

const (
	appName = "FindReplace"
	version = "v0.1.0"
)

const usage = `FindReplace
A tool to find and replace given pattern with substitute inside file.

Syntax:
  findreplace [options]
  findreplace [options] <pattern> <substitute> <file_path>

where,
  pattern      the pattern to search for in the file
  substitute   the text to replace the pattern with or a JSON/YAML/CSON formatted hash-map
  file_path    the path to the file to search and replace in

Options:
  -h --help             Show help menu
  -v --version          Show version info
  -l --log              Show verbose log
     --dry-run          Print the changes instead of writing the file
     --backup           Keep a copy of the original as <file_path>.bak
     --no-color         Disable ANSI colors in output
     --log-level LEVEL  Diagnostics on stderr: trace|debug|info|warn|error
                        (default warn, info with --log; env FINDREPLACE_LOG_LEVEL)

A plain substitute replaces every occurrence of the pattern as literal text.
A hash-map substitute treats the pattern as a regular expression and rewrites
each key into its value inside every match. Options must come before the
positional arguments; use -- if the pattern starts with a dash.

Usages:
  findreplace --help
  findreplace --version
  findreplace 'foo' 'bar' file.txt
  findreplace 'hello world' '{"hello":"hi","world":"earth"}' file.txt
  findreplace 'hello world' '{hello: hi, world: earth}' file.txt
  findreplace 'hello world' 'hello:hi;world:earth' file.txt
  findreplace --log 'hello world' 'hello:hi;world:earth' file.txt
  findreplace --dry-run -- '-v[0-9]+' 'v:V' CHANGELOG.md

Extras:
  findreplace "` + "`" + `{[a-zA-Z0-9_-]+` + "`" + `}" '{:(;}:)' file.txt   [PowerShell]
  findreplace '\{[a-zA-Z0-9_-]+\}' '{:(;}:)' file.txt     [Bash]
  findreplace "\{[a-zA-Z0-9_-]+\}" "{:(;}:)" file.txt     [CMD]
`
