// Package migrations embeds the SQL schema for the SQLite save store.
package migrations
