/*
Package replace implements replace-all over strings: every non-overlapping
occurrence of a search token is replaced by literal text or by the result of
a function.

	            +-------------+
	            | ReplaceAll  |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+          +-------+-------+
	|  Literal   |          |    Pattern    |
	| (scan loop)|          |  (coregex, g) |
	+-----+------+          +-------+-------+
	      |                         |
	      +------------+------------+
	                   |
	         +---------+---------+
	         | Text | Func(E)    |
	         | (Expand $&, ...)  |
	         +-------------------+

🎯 Search arguments:
  - Literal: scanned left to right, resuming after each match. The empty
    literal matches before every rune and at the end of the subject.
  - Matcher: a structured pattern. It must carry the global flag, otherwise
    the call fails with a *NonGlobalPatternError. A Matcher that implements
    SubstitutionStrategy performs the whole call itself.

🔄 Replacement arguments:
  - Text: literal text; placeholders are expanded per match (see Expand).
  - Func / FuncE: called once per match, left to right.

Everything here is pure and safe for concurrent use.
*/
package replace
