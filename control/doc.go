// Package control executes reads and writes against the host platform
// for datapoints addressed by free text. Resolution goes through the
// search package; writes require both writable-set membership and the
// datapoint's own auto-change permission.
package control
