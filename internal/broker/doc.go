// Package broker distributes interpretation events over named topics.
//
// Two implementations share the Broker interface: Local keeps subscribers in
// process and NATS publishes JSON encoded events on a subject of the same name
// as the topic. Publisher adapts a topic to events.Hook so an interpreter can
// stream its lifecycle without knowing where the events go.
//
//	nc, err := natsx.Connect(cfg.NATS.URL)
//	if err != nil {
//		return err
//	}
//	defer nc.Close()
//
//	topic := broker.NATS(nc).Topic(ctx, cfg.NATS.Subject)
//	interp := interpreter.New(registry, interpreter.WithHook(broker.Publisher(topic, logger)))
//
// Subscribers receive events through the same events.Hook interface. A
// subscription ends when Unsubscribe is called or its context is cancelled.
package broker
