package config

// Interner defaults.
const (
	DefaultSymbol   = "u32"
	DefaultHasher   = "maphash"
	DefaultCapacity = 0
)

// Snapshot defaults.
const (
	DefaultSnapshotCodec    = "json"
	DefaultSnapshotCompress = false
)

// Benchmark harness defaults.
const (
	DefaultBenchStrings   = 100_000
	DefaultBenchStringLen = 5
)

// Profiling harness defaults.
const (
	DefaultProfileWords       = 100_000
	DefaultProfileSteps       = 10
	DefaultProfileWordLen     = 20
	DefaultProfileMaxOverhead = 0.0
	DefaultProfileMaxMemory   = ""
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false
)

// Observability defaults.
const (
	DefaultOTLPEndpoint = ""
	DefaultOTLPInsecure = false
	DefaultMetricsAddr  = ""
	DefaultSampleRatio  = 1.0
)
