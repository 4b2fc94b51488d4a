package cli

// RootOpts — общие параметры обеих команд, заполняются
// persistent-флагами корневой команды.
type RootOpts struct {
	// URL — адрес брокера (amqp://...).
	URL string

	// Queue — имя очереди, общее для publisher и consumer.
	Queue string
}
