// Package telemetry обеспечивает наблюдаемость.
//
// Включает:
//   - logging.go — structured logging через slog
//
// Оба процесса используют единый формат логирования;
// consumer дополнительно экспортирует метрики на /metrics endpoint.
package telemetry
