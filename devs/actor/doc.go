// Package actor holds the role behaviours synthesized from architecture
// components: sensor, actuator, controller, interface (Gateway), generic
// (Relay), and the terminal Sink. Every behaviour implements devs.Reactive.
package actor
