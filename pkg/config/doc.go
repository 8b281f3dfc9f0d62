// Package config loads replaceall rule files.
//
//	            +-------------+
//	            |   Config    |
//	            |   (Rules)   |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   JSON   | |   HCL    |
//	+----------+ +----------+ +----------+
//
// 🎯 Purpose:
// - Reads rule files in YAML, JSON or HCL, picked by extension
// - Validates rules: every rule has a search, regex rules compile and are global
// - Fills defaults: root, include globs, pattern flags, concurrency
// - Compiles rules into text.ReplacementRule values
//
// 🔍 Example:
//
//	# .replaceall.yaml
//	root: .
//	include: ["**/*.go"]
//	ignore: ["vendor/**"]
//	rules:
//	  - search: github.com/old/module
//	    replace: github.com/new/module
//	  - search: 'Copyright (\d{4})'
//	    replace: 'Copyright $1-2025'
//	    regex: true
//
//	# .replaceall.hcl
//	rule {
//	  search  = "localhost"
//	  replace = env.TARGET_HOST
//	}
//
// Relative roots resolve against the directory holding the config file.
package config
