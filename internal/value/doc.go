/*
Package value defines the arguments accepted by query templates.

A Value is one of a closed set of variants: Null, Bool, Int, Float, Str,
Array and the Skip sentinel. Arguments supplied as plain Go values are
converted with Of. The package also implements the loose casts used by typed
placeholders: ToInt and ToFloat read numbers from the start of a string, and
Text gives the plain string form of a scalar.
*/
package value
