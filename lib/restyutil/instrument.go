package restyutil

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

// InstrumentClient dumps every completed exchange of the client into
// `output`, one message per request. The message id is a running counter
// suffixed with the SOAPAction, if the request carried one.
//
// `output` can be nil, in which case the function is a no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := fmt.Sprintf("%04d", atomic.AddUint64(&idcounter, 1))
		action := strings.Trim(res.Request.Header.Get("SOAPAction"), `"`)
		if action != "" {
			id += "-" + action[strings.LastIndex(action, "/")+1:]
		}
		output.Write(id, formatHttpMessage(res))
		slog.DebugContext(
			res.Request.Context(), "dumped exchange",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"message_id", id,
		)
		return nil
	})
}
