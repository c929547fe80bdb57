package logging

// Convenience helpers so call sites stay one-liners.

// Server logs at info level to the server category.
func Server(format string, args ...interface{}) {
	Get(CategoryServer).Info(format, args...)
}

// ServerDebug logs at debug level to the server category.
func ServerDebug(format string, args ...interface{}) {
	Get(CategoryServer).Debug(format, args...)
}

// Gen logs at info level to the generation category.
func Gen(format string, args ...interface{}) {
	Get(CategoryGen).Info(format, args...)
}

// GenDebug logs at debug level to the generation category.
func GenDebug(format string, args ...interface{}) {
	Get(CategoryGen).Debug(format, args...)
}

// Invoker logs at info level to the invoker category.
func Invoker(format string, args ...interface{}) {
	Get(CategoryInvoker).Info(format, args...)
}

// InvokerDebug logs at debug level to the invoker category.
func InvokerDebug(format string, args ...interface{}) {
	Get(CategoryInvoker).Debug(format, args...)
}

// Store logs at info level to the store category.
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Info(format, args...)
}

// StoreDebug logs at debug level to the store category.
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debug(format, args...)
}

// MCP logs at info level to the mcp category.
func MCP(format string, args ...interface{}) {
	Get(CategoryMCP).Info(format, args...)
}

// MCPDebug logs at debug level to the mcp category.
func MCPDebug(format string, args ...interface{}) {
	Get(CategoryMCP).Debug(format, args...)
}

// Library logs at info level to the library category.
func Library(format string, args ...interface{}) {
	Get(CategoryLibrary).Info(format, args...)
}
