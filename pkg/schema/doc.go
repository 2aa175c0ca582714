// Package schema declares widget option schemas and resolves user supplied
// options against them.
//
// A Schema is an ordered set of named Options. Each Option carries a type tag,
// a default value and optional constraints (numeric range, allowed values,
// string pattern, nullability). Dict options nest a Schema of their own and
// list options may declare an item Option, so the whole option tree of a
// widget is described by one value.
//
// Normalize overlays a (possibly partial, possibly empty) user mapping onto
// the schema defaults:
//
//	defaults  {animation: {enabled: true, type: fadeInOut, duration: 200}}
//	overrides {animation: {duration: 500}}
//	result    {animation: {enabled: true, type: fadeInOut, duration: 500}}
//
// Dicts merge per key, scalars and lists replace the default. Every key the
// schema declares is present in the result. What happens to unknown keys and
// to values that break a constraint is decided by a Policy.
package schema
