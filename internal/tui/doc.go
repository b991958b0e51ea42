// Package tui renders the battle screen with Bubble Tea.
//
// The model bridges engine events into the program loop, reports outcomes
// through the scoring client, and styles everything per the active theme.
package tui
