// Package console provides the interactive playback dashboard.
package console

type state int

const (
	dashboardState state = iota
	openState
	errorState
)
