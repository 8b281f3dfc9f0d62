/*
Package operation rewrites a directory tree with a set of replace-all rules.

	+-------------+      +-------------+      +-------------+
	|   Config    | ---> |  Operation  | ---> |   Status    |
	|   (Rules)   |      |   (apply)   |      | (read/write)|
	+-------------+      +------+------+      +-------------+
	                            |
	                     +------+------+
	                     |    Text     |
	                     | (Replacer)  |
	                     +-------------+

🔄 Flow:
1. Compile the configured rules
2. Glob the include patterns under the root, minus ignores and the config file
3. Per file, keep the rules whose file filter matches
4. Skip binary files, run the replacer, write atomically when content changed
5. Track each result in the status manager and print it

Files are processed concurrently, bounded by the configured concurrency.
In check mode nothing is written and ErrChangesPending is returned when a
file would change. Dry runs write nothing but succeed.

🔍 Example:

	op := operation.NewApplyOperation(operation.Options{
		Config: cfg,
		Status: status.New(cfg.Root, &logger),
		Logger: console,
	})
	err := operation.NewRunner(&logger, false).Run(ctx, op)
*/
package operation
