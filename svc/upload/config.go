package upload

type Config struct {
	MaxSize          int64    `env:"UPLOAD_MAX_SIZE" envDefault:"10485760"`
	AllowedTypes     []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:"," envDefault:"application/pdf,image/*,text/plain,text/markdown,text/csv"`
	CheckSignature   bool     `env:"UPLOAD_CHECK_SIGNATURE" envDefault:"true"`
	ScanMalware      bool     `env:"UPLOAD_SCAN_MALWARE" envDefault:"true"`
	AllowExecutables bool     `env:"UPLOAD_ALLOW_EXECUTABLES" envDefault:"false"`
	BatchConcurrency int      `env:"UPLOAD_BATCH_CONCURRENCY" envDefault:"4"`

	// MemoryBufferBytes caps how much of a multipart body is held in memory
	// before spilling to disk, mirroring http.Request.ParseMultipartForm.
	MemoryBufferBytes int64 `env:"UPLOAD_MEMORY_BUFFER" envDefault:"33554432"`
}
