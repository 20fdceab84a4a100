// Package keywordset holds the keyword taxonomy used by the category rules:
// a list of named keyword sets, each a list of {id, @id} pairs.
//
// The taxonomy is data, not code. It is parsed from JSON or YAML (either a
// bare list or an API page {"data": [...]}) and kept in a Store whose
// snapshot can be swapped at runtime. Two sources feed a Store:
//
//   - Watcher reloads a local file on change (fsnotify, debounced). A file
//     that fails to parse keeps the previous snapshot.
//   - RedisSource reads and writes a shared document under one redis key.
//
// Set names are matched either exactly or by ":"+name suffix, so rules can
// refer to "topic_content" regardless of the data source prefix.
package keywordset
