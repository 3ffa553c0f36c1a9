package sema

// builtinNames are resolved by the runtime, not by any module scope.
var builtinNames = map[string]struct{}{
	"abs": {}, "aiter": {}, "all": {}, "anext": {}, "any": {}, "ascii": {},
	"bin": {}, "bool": {}, "breakpoint": {}, "bytearray": {}, "bytes": {},
	"callable": {}, "chr": {}, "classmethod": {}, "compile": {}, "complex": {},
	"delattr": {}, "dict": {}, "dir": {}, "divmod": {}, "enumerate": {},
	"eval": {}, "exec": {}, "filter": {}, "float": {}, "format": {},
	"frozenset": {}, "getattr": {}, "globals": {}, "hasattr": {}, "hash": {},
	"help": {}, "hex": {}, "id": {}, "input": {}, "int": {}, "isinstance": {},
	"issubclass": {}, "iter": {}, "len": {}, "list": {}, "locals": {}, "map": {},
	"max": {}, "memoryview": {}, "min": {}, "next": {}, "object": {}, "oct": {},
	"open": {}, "ord": {}, "pow": {}, "print": {}, "property": {}, "range": {},
	"repr": {}, "reversed": {}, "round": {}, "set": {}, "setattr": {},
	"slice": {}, "sorted": {}, "staticmethod": {}, "str": {}, "sum": {},
	"super": {}, "tuple": {}, "type": {}, "vars": {}, "zip": {},
	"__name__": {}, "__file__": {}, "__doc__": {}, "__import__": {},
	"None": {}, "True": {}, "False": {}, "Ellipsis": {}, "NotImplemented": {},
	"BaseException": {}, "Exception": {}, "ArithmeticError": {}, "AssertionError": {},
	"AttributeError": {}, "EOFError": {}, "ImportError": {}, "IndexError": {},
	"KeyError": {}, "KeyboardInterrupt": {}, "LookupError": {}, "NameError": {},
	"NotImplementedError": {}, "OSError": {}, "OverflowError": {}, "RuntimeError": {},
	"StopIteration": {}, "StopAsyncIteration": {}, "SyntaxError": {}, "SystemExit": {},
	"TypeError": {}, "ValueError": {}, "ZeroDivisionError": {}, "FileNotFoundError": {},
	"ExceptionGroup": {}, "BaseExceptionGroup": {},
}

func isBuiltinName(name string) bool {
	_, ok := builtinNames[name]
	return ok
}
