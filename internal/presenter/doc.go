// Package presenter holds the authoritative presentation state per schedule.
//
// The store is the single writer for PresentationState; handlers mutate it
// only through the app service, and displays only observe it through the
// broadcast channel. States are created lazily on the first presentation
// command and live in memory only.
package presenter
