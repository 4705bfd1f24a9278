package sqltpl

// CachedTemplates returns the number of parsed templates held by db.
func (db *DB) CachedTemplates() int {
	return db.cache.len()
}

// CachedTemplate returns the parsed form of input held by db, without
// marking it as recently used.
func (db *DB) CachedTemplate(input string) (any, bool) {
	if db.cache == nil {
		return nil, false
	}
	return db.cache.parsed.Peek(input)
}

// CacheEnabled reports whether db caches parsed templates.
func (db *DB) CacheEnabled() bool {
	return db.cache != nil
}
