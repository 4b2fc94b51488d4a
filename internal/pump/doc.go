// Package pump реализует цикл публикации демо-сообщений.
//
// Pump отправляет пронумерованную партию текстовых сообщений
// ("Message 1" .. "Message N") в очередь с фиксированной паузой между
// отправками. Опционально партия повторяется по cron-расписанию.
package pump
