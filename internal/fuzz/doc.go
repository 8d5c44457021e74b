// Package fuzztests houses Go fuzz harnesses for the lint pipeline
// (source -> lexer -> parser -> lints -> fixes). They guard against panics,
// hangs and fixes that break the file they repair.
//
// Назначение: загружать произвольные байты в FileSet и прогонять их через
// весь конвейер. Не делает: генерацию корпусов, запись файлов, CLI.
package fuzztests
