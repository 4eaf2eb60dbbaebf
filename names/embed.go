package names

import _ "embed"

// The dictionaries ship as newline-delimited UTF-8 text files.
// hashed_names.txt holds one plain name per line; numbered_names.txt holds
// printf-style templates with a single %d/%u (optionally zero-padded) verb.

//go:embed hashed_names.txt
var hashedNamesData string

//go:embed numbered_names.txt
var numberedNamesData string
