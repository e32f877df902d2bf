package obs

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// Logger returns the process-wide logger. Output is one JSON object per
// line on stdout, with no prefix or flags, so log shippers can ingest
// it as-is.
var Logger = sync.OnceValue(func() *log.Logger {
	return log.New(os.Stdout, "", 0)
})

// LogRequest serialises the entry as a single JSON line. When the entry
// itself cannot be marshalled a fixed error line is emitted instead of
// silently dropping it.
func LogRequest(entry map[string]any) {
	data, err := json.Marshal(entry)
	if err != nil {
		Logger().Println(`{"level":"error","msg":"log entry not serialisable"}`)
		return
	}
	Logger().Println(string(data))
}
