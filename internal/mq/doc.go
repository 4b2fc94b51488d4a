// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением (dial с retry, reconnect, graceful shutdown)
//   - topology.go   — идемпотентное объявление очереди
//   - publisher.go  — публикация текстовых сообщений в очередь
//   - consumer.go   — потребление сообщений из очереди
//
// Обмен устроен point-to-point: публикация идёт в default exchange
// с именем очереди в качестве routing key, тела сообщений — непрозрачный
// UTF-8 текст без envelope. Обе стороны объявляют одну и ту же очередь
// с одинаковыми параметрами, поэтому повторное объявление — no-op.
package mq
