package resolver

// initStem is the file stem that marks a directory as a package module
// (mirrors Python's `__init__`).
const initStem = "__init__"

// topScriptSentinel is the module name ProjectParser special-cases into a
// pathless, treeless stub instead of parsing (mirrors Python's `__main__`).
const topScriptSentinel = "__main__"

// knownPathologicalFiles names modules whose source is known to defeat a
// naive parse and is skipped unconditionally, independent of the syntax
// parser's actual capability.
var knownPathologicalFiles = map[string]bool{
	"pydoc_data.topics": true,
}

// sourceExtensions lists the file suffixes ModuleFinder accepts as a leaf
// module, tried in order.
var sourceExtensions = []string{".py"}

// hostBuiltinModules lists the names the built-in host-finder resolves
// straight to a StandardLib spec without ever touching the filesystem.
// Parsing is always skipped for these; it mirrors the fixed interpreter
// built-ins and frozen bootstrap modules of a CPython-class host.
var hostBuiltinModules = map[string]bool{
	"sys": true, "builtins": true, "_thread": true, "_warnings": true,
	"_weakref": true, "_imp": true, "_io": true, "_codecs": true,
	"_abc": true, "_collections_abc": true, "_frozen_importlib": true,
	"_frozen_importlib_external": true, "marshal": true, "errno": true,
	"posix": true, "itertools": true, "_signal": true, "_sre": true,
}

// standardLibraryModules lists the top-level dotted names treated as part
// of the standard library when no search root resolves them locally
// first (shadowing always wins, per spec §4.1's tie-break rule).
var standardLibraryModules = map[string]bool{
	"abc": true, "argparse": true, "array": true, "ast": true,
	"asyncio": true, "base64": true, "bisect": true, "calendar": true,
	"collections": true, "configparser": true, "contextlib": true,
	"copy": true, "csv": true, "dataclasses": true, "datetime": true,
	"decimal": true, "difflib": true, "dis": true, "email": true,
	"enum": true, "fnmatch": true, "functools": true, "glob": true,
	"gzip": true, "hashlib": true, "heapq": true, "hmac": true,
	"html": true, "http": true, "importlib": true, "inspect": true,
	"io": true, "ipaddress": true, "json": true, "keyword": true,
	"logging": true, "math": true, "mimetypes": true, "multiprocessing": true,
	"operator": true, "os": true, "pathlib": true, "pickle": true,
	"platform": true, "pprint": true, "pydoc": true, "pydoc_data": true,
	"queue": true, "random": true, "re": true, "sched": true,
	"secrets": true, "shelve": true, "shutil": true, "signal": true,
	"socket": true, "sqlite3": true, "ssl": true, "stat": true,
	"statistics": true, "string": true, "struct": true, "subprocess": true,
	"tempfile": true, "textwrap": true, "threading": true, "time": true,
	"tkinter": true, "token": true, "tokenize": true, "traceback": true,
	"types": true, "typing": true, "unicodedata": true, "unittest": true,
	"urllib": true, "uuid": true, "venv": true, "warnings": true,
	"weakref": true, "xml": true, "xmlrpc": true, "zipfile": true,
	"zlib": true, "zoneinfo": true,
}

func isHostBuiltin(name string) bool {
	return hostBuiltinModules[name]
}

func isStandardLibraryTopLevel(name string) bool {
	return standardLibraryModules[name]
}
