// Package domain holds the game state of one Diplomacy game tracked over chat:
// the turn marker, hidden and revealed orders, the optional scoreboard, target
// assignments and the board reference rendered with turn announcements.
//
// Everything here is pure. Handlers in the app package perform the external
// calls first and apply the matching transition only once those succeed.
package domain
