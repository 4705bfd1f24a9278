/*
Package sqltpl builds SQL queries from templates with typed placeholders and
optional fragments.

A template is ordinary SQL in which each '?' is a placeholder. Placeholders
are replaced, from left to right, by the arguments given to
[DB.BuildQuery], formatted and escaped according to the letter that follows
the '?'. The result is a single SQL string that can be handed to a database
client. This package never connects to a database; the client only supplies
the primitive used to escape strings (an [Escaper]).

# Placeholders

	?d   integer; NULL stays NULL, anything else is cast to an integer
	?f   float; NULL stays NULL, anything else is cast to a float
	?a   array; a list renders as "1, 2, 3", an associative array as
	     "`col` = 'value', ..."
	?#   identifier or list of identifiers, quoted with backticks
	?s   scalar; the same as an untagged placeholder
	?    formatted according to the argument: NULL, 1 or 0 for booleans,
	     numbers as they are, strings as escaped quoted literals, arrays as
	     for ?a

For example, given

	db := sqltpl.NewDB(sqltpl.BackslashEscaper)
	sql, err := db.BuildQuery("UPDATE ?# SET ?a WHERE id IN (?a)",
		"users",
		sqltpl.Assoc(sqltpl.P("name", "O'Brien"), sqltpl.P("active", true)),
		[]int{1, 2, 3},
	)

sql is

	UPDATE `users` SET `name` = 'O\'Brien', `active` = 1 WHERE id IN (1, 2, 3)

# Arguments

Arguments are [Value]s or plain Go values. Slices become lists, maps with
string keys and structs with "db" tags become associative arrays, pointers
are followed and nil is NULL. See [ValueOf].

# Conditional blocks

A fragment in braces is a conditional block:

	SELECT * FROM person {WHERE team = ?s}

If the value returned by [Skip] is among the arguments, every block of the
template is removed. Otherwise the braces are dropped and the fragment is
kept. Blocks cannot be nested.

Note that the decision applies to the whole template. With

	SELECT * FROM t WHERE a = ?d {AND b = ?d} {AND c = ?d}

and the arguments 1, Skip(), 3, both blocks are removed and the query is
"SELECT * FROM t WHERE a = 1  ".

Placeholders are counted after the blocks have been resolved, so a removed
block does not consume arguments. The Skip value itself must never be
consumed by a placeholder; doing so is an error.

# Escaping

String literals are passed through the Escaper and then any quote left
unescaped is escaped according to the [QuoteStyle]: \' by default, or ''
with DoubledQuotes. Identifiers have their backticks doubled. There is no
way to insert an argument into the SQL without one of these steps.
*/
package sqltpl
