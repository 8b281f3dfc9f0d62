/*
Package status manages file storage and result tracking for replaceall.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +------------+-----------+
	      |                        |
	+-----+-----+           +------+------+
	|   Files   |           |  Results    |
	| (atomic)  |           | (per file)  |
	+-----------+           +-------------+

🎯 Purpose:
- Reads files under a root directory
- Writes rewritten files atomically (temp file + rename), keeping permissions
- Tracks what happened to each file (modified, unchanged, skipped, failed)
- Summarizes a run for the CLI

Manager is safe for concurrent use; the operation package shares one
Manager between all of its workers.
*/
package status
