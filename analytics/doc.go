// Package analytics carries gameplay analytics events from the game to
// whatever sinks are listening.
//
// Events are published on a [Donburi] world through a typed event channel and
// delivered when [Bus.Flush] runs, once per game tick. The game never reads
// anything back from analytics.
//
// Usage:
//
//	bus := analytics.NewBus()
//	bus.Subscribe(analytics.LogSink)
//	bus.Emit(analytics.Event{Name: analytics.GameStarted})
//	bus.Flush()
//
// [Donburi]: https://github.com/yohamta/donburi
package analytics
