// Package services contains domain services that coordinate across value
// objects and aggregates without belonging to any single one. The workflow
// recovery service lives here: it owns the persist/restore cycle between a
// live workflow instance and its externally stored snapshot.
package services
