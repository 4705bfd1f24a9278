/*
Package template turns a query template and its arguments into SQL.

Building a query has two stages.

# Conditional blocks

A span enclosed in braces, such as "{AND age > ?d}", is a conditional
block. Blocks do not nest. If the Skip sentinel appears anywhere among the
arguments every block in the template is removed; otherwise the braces are
dropped and the content is kept. The decision is global: it is not tied to
the arguments used by the placeholders inside a particular block.

# Placeholders

The result of the first stage is scanned from left to right for
placeholders. A placeholder is a '?' optionally followed by one of the type
tags d (integer), f (float), a (array), # (identifier) and s (scalar). The
n-th placeholder consumes the n-th argument. An untagged placeholder takes
its tag from the argument: integers use d, floats f, arrays a, and all other
values s.
*/
package template
