// Package app provides the application service layer.
//
// Orchestrates the control-plane use cases: schedule entry management,
// presentation commands, scripture creation from the bible browser, and
// catalog search. Sits between HTTP handlers and the domain; it is the only
// caller of the presentation state store and the only publisher on the
// broadcast channel. Depends on domain interfaces, not concrete
// implementations.
package app
