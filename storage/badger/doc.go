// Package badger implements the storage interfaces on BadgerDB.
package badger
