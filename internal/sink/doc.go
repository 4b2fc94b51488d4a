// Package sink реализует обработку принятых сообщений:
// валидация UTF-8, вывод тела в лог и опциональная запись в журнал.
package sink
