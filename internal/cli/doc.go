// Package cli содержит команды courier:
//   - publish.go — отправка партии демо-сообщений в очередь
//   - consume.go — приём и вывод сообщений из очереди
//   - journal.go — вывод последних записей журнала принятых сообщений
//
// Общие параметры (адрес брокера, имя очереди) задаются persistent-флагами
// корневой команды с fallback на переменные окружения.
package cli
