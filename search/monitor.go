package search

import "github.com/bloop16/homestate/core"

// ResolveMonitor provides hooks to observe the resolution process.
// Implement this interface to track which stage produced a match.
type ResolveMonitor interface {
	Start(query string)
	ExactMatch(datapointID string)
	AliasMatch(alias, datapointID string)
	SubstringMatch(alias, datapointID string)
	WordOverlapMatch(datapointID string)
	AfterVectorSearch(hits []core.SearchResult)
	VectorMatch(datapointID string, score float32)
	NoMatch(query string)
}

// noopMonitor is a no-op implementation of ResolveMonitor
type noopMonitor struct{}

var _ ResolveMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) ExactMatch(_ string)                   {}
func (n *noopMonitor) AliasMatch(_, _ string)                {}
func (n *noopMonitor) SubstringMatch(_, _ string)            {}
func (n *noopMonitor) WordOverlapMatch(_ string)             {}
func (n *noopMonitor) AfterVectorSearch(_ []core.SearchResult) {}
func (n *noopMonitor) VectorMatch(_ string, _ float32)       {}
func (n *noopMonitor) NoMatch(_ string)                      {}
