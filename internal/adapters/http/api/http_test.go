package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/utilapi/internal/adapters/http/api"
	"github.com/okian/utilapi/internal/adapters/http/swagger"
	"github.com/okian/utilapi/internal/adapters/weather"
	. "github.com/smartystreets/goconvey/convey"
)

// mockWeather records calls and returns canned answers.
type mockWeather struct {
	report *weather.Report
	err    error
	calls  int
	city   string
	units  string
}

func (m *mockWeather) Current(_ context.Context, city, units string) (*weather.Report, error) {
	m.calls++
	m.city, m.units = city, units
	return m.report, m.err
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestServer_Routes(t *testing.T) {
	Convey("Given a new API server", t, func() {
		ctx := context.Background()
		h := api.NewServer(api.WithMetricsEnabled(true)).Routes(ctx, swagger.Register)

		Convey("Then GET / should greet", func() {
			w := do(h, "GET", "/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(decode(w)["message"], ShouldEqual, "Hello Chief! Your API is live 🚀")
		})

		Convey("Then GET /health should report alive", func() {
			w := do(h, "GET", "/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w), ShouldResemble, map[string]any{"status": "alive"})
		})

		Convey("Then a trailing slash should still match", func() {
			w := do(h, "GET", "/health/", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then HEAD should be served by GET routes", func() {
			w := do(h, "HEAD", "/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then unknown paths should return a JSON 404", func() {
			w := do(h, "GET", "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["error"], ShouldEqual, "not found")
		})

		Convey("Then a method mismatch should return a JSON 405", func() {
			w := do(h, "GET", "/echo", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(decode(w)["error"], ShouldEqual, "method not allowed")

			w = do(h, "POST", "/health", `{}`)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then docs routes should be mounted", func() {
			So(do(h, "GET", "/openapi.json", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, "GET", "/docs", "").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then /metrics should expose Prometheus text", func() {
			_ = do(h, "GET", "/health", "")
			w := do(h, "GET", "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "utilapi_http_requests_total")
		})

		Convey("Then every response should carry a request id", func() {
			w := do(h, "GET", "/health", "")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

			req := httptest.NewRequest("GET", "/health", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w = httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})

	Convey("Given a server with metrics disabled and a custom message", t, func() {
		h := api.NewServer(api.WithMessage("hi")).Routes(context.Background())

		Convey("Then /metrics should not be routed", func() {
			So(do(h, "GET", "/metrics", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then the custom message should be used", func() {
			So(decode(do(h, "GET", "/", ""))["message"], ShouldEqual, "hi")
		})
	})

	Convey("Given a route that panics", t, func() {
		h := api.NewServer().Routes(context.Background(), func(_ context.Context, r chi.Router) {
			r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
		})

		Convey("Then the panic should become a JSON 500", func() {
			w := do(h, "GET", "/boom", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode(w)["error"], ShouldEqual, "internal server error")
		})
	})
}

func TestTimeHandler(t *testing.T) {
	Convey("Given the time endpoint", t, func() {
		h := api.NewServer().Routes(context.Background())

		Convey("Then it should return an ISO-8601 UTC time and an epoch value", func() {
			body := decode(do(h, "GET", "/time", ""))
			ts, err := time.Parse(time.RFC3339Nano, body["utc_time"].(string))
			So(err, ShouldBeNil)
			So(strings.HasSuffix(body["utc_time"].(string), "Z"), ShouldBeTrue)
			So(body["timestamp"].(float64), ShouldAlmostEqual, float64(ts.UnixNano())/1e9, 1e-3)
		})

		Convey("Then repeated calls should never go backwards", func() {
			prev := -1.0
			for i := 0; i < 50; i++ {
				cur := decode(do(h, "GET", "/time", ""))["timestamp"].(float64)
				So(cur, ShouldBeGreaterThanOrEqualTo, prev)
				prev = cur
			}
		})
	})
}

func TestEchoHandler(t *testing.T) {
	Convey("Given the echo endpoint", t, func() {
		h := api.NewServer(api.WithMaxBodyBytes(64)).Routes(context.Background())

		for _, body := range []string{
			`{"a":1,"b":[true,null,"x"]}`,
			`[1,2,3]`,
			`"just a string"`,
			`42.5`,
			`null`,
		} {
			Convey("Then "+body+" should be echoed unchanged", func() {
				w := do(h, "POST", "/echo", body)
				So(w.Code, ShouldEqual, http.StatusOK)

				var want any
				So(json.Unmarshal([]byte(body), &want), ShouldBeNil)
				got := decode(w)
				So(got["status"], ShouldEqual, "success")
				So(got["you_sent"], ShouldResemble, want)
			})
		}

		Convey("Then a malformed body should be echoed as null", func() {
			got := decode(do(h, "POST", "/echo", `{"a":`))
			So(got, ShouldContainKey, "you_sent")
			So(got["you_sent"], ShouldBeNil)
			So(got["status"], ShouldEqual, "success")
		})

		Convey("Then a missing body should be echoed as null", func() {
			w := do(h, "POST", "/echo", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["you_sent"], ShouldBeNil)
		})

		Convey("Then an oversized body should be echoed as null", func() {
			w := do(h, "POST", "/echo", `"`+strings.Repeat("x", 100)+`"`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["you_sent"], ShouldBeNil)
		})
	})
}

func TestTransformHandler(t *testing.T) {
	Convey("Given the transform endpoint", t, func() {
		h := api.NewServer().Routes(context.Background())

		Convey("When mode is upper", func() {
			got := decode(do(h, "POST", "/transform", `{"text":"Hello World","mode":"upper"}`))
			So(got, ShouldResemble, map[string]any{"original": "Hello World", "result": "HELLO WORLD", "mode": "upper"})
		})

		Convey("When mode is lower in mixed case", func() {
			got := decode(do(h, "POST", "/transform", `{"text":"Hello World","mode":"LoWeR"}`))
			So(got["result"], ShouldEqual, "hello world")
			So(got["mode"], ShouldEqual, "lower")
		})

		Convey("When mode is strip", func() {
			got := decode(do(h, "POST", "/transform", `{"text":"  a   b\t\nc  ","mode":"strip"}`))
			So(got["result"], ShouldEqual, "a b c")
			So(got["original"], ShouldEqual, "  a   b\t\nc  ")
		})

		Convey("When mode is omitted", func() {
			got := decode(do(h, "POST", "/transform", `{"text":"abc"}`))
			So(got["result"], ShouldEqual, "ABC")
			So(got["mode"], ShouldEqual, "upper")
		})

		Convey("When the body is empty", func() {
			w := do(h, "POST", "/transform", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w), ShouldResemble, map[string]any{"original": "", "result": "", "mode": "upper"})
		})

		Convey("When mode is invalid", func() {
			w := do(h, "POST", "/transform", `{"text":"abc","mode":"reverse"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["error"], ShouldStartWith, "invalid mode")
		})

		Convey("When the body is not valid JSON", func() {
			w := do(h, "POST", "/transform", `{"text":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["error"], ShouldEqual, "invalid JSON body")
		})

		Convey("When text has the wrong type", func() {
			w := do(h, "POST", "/transform", `{"text":5}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestSummarizeHandler(t *testing.T) {
	Convey("Given the summarize endpoint", t, func() {
		h := api.NewServer().Routes(context.Background())

		Convey("When asking for two sentences", func() {
			w := do(h, "POST", "/summarize", `{"text":"Hello. World. Foo. Bar.","max_sentences":2}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w), ShouldResemble, map[string]any{"summary": "Hello. World.", "length": 2.0, "max_sentences": 2.0})
		})

		Convey("When max_sentences is omitted", func() {
			got := decode(do(h, "POST", "/summarize", `{"text":"A. B. C. D. E."}`))
			So(got["summary"], ShouldEqual, "A. B. C.")
			So(got["max_sentences"], ShouldEqual, 3.0)
		})

		Convey("When max_sentences is loosely typed", func() {
			cases := map[string]float64{
				`"2"`:   2,
				`" 1 "`: 1,
				`2.9`:   2,
				`"abc"`: 3,
				`null`:  3,
				`true`:  3,
				`[1]`:   3,
			}
			for raw, want := range cases {
				got := decode(do(h, "POST", "/summarize", `{"text":"A. B. C. D.","max_sentences":`+raw+`}`))
				So(got["max_sentences"], ShouldEqual, want)
			}
		})

		Convey("When text is missing", func() {
			w := do(h, "POST", "/summarize", `{"max_sentences":2}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["error"], ShouldEqual, "text is required")
		})

		Convey("When text is empty", func() {
			So(do(h, "POST", "/summarize", `{"text":""}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body is missing", func() {
			So(do(h, "POST", "/summarize", "").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestWeatherHandler(t *testing.T) {
	Convey("Given the weather endpoint", t, func() {
		ctx := context.Background()

		Convey("When city is missing", func() {
			m := &mockWeather{}
			h := api.NewServer(api.WithWeather(m)).Routes(ctx)
			w := do(h, "GET", "/weather?units=metric", "")

			Convey("Then it should return 400 without calling upstream", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode(w)["error"], ShouldEqual, "city query parameter is required")
				So(m.calls, ShouldEqual, 0)
			})
		})

		Convey("When no upstream is configured", func() {
			h := api.NewServer().Routes(ctx)
			w := do(h, "GET", "/weather?city=Paris", "")

			Convey("Then it should return 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decode(w)["error"], ShouldEqual, "weather API key is not configured")
			})
		})

		Convey("When the client has no API key", func() {
			h := api.NewServer(api.WithWeather(weather.New(""))).Routes(ctx)
			w := do(h, "GET", "/weather?city=Paris", "")

			Convey("Then it should return 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decode(w)["error"], ShouldEqual, "weather API key is not configured")
			})
		})

		Convey("When the lookup succeeds", func() {
			m := &mockWeather{report: &weather.Report{
				City:    "Paris",
				Weather: json.RawMessage(`[{"main":"Clear"}]`),
				Main:    json.RawMessage(`{"temp":21.5}`),
				Raw:     json.RawMessage(`{"name":"Paris"}`),
			}}
			h := api.NewServer(api.WithWeather(m)).Routes(ctx)
			w := do(h, "GET", "/weather?city=%20Paris%20", "")

			Convey("Then the reshaped report should be returned with default units", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(m.city, ShouldEqual, "Paris")
				So(m.units, ShouldEqual, "metric")
				got := decode(w)
				So(got["city"], ShouldEqual, "Paris")
				So(got["main"], ShouldResemble, map[string]any{"temp": 21.5})
				So(got["raw"], ShouldResemble, map[string]any{"name": "Paris"})
			})
		})

		Convey("When the upstream answers non-200", func() {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
			}))
			defer upstream.Close()

			h := api.NewServer(api.WithWeather(weather.New("bad", weather.WithBaseURL(upstream.URL)))).Routes(ctx)
			w := do(h, "GET", "/weather?city=Paris&units=imperial", "")

			Convey("Then status and body should be forwarded verbatim", func() {
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
				So(w.Body.String(), ShouldEqual, `{"cod":401,"message":"Invalid API key."}`)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			})
		})

		Convey("When the upstream is unreachable", func() {
			upstream := httptest.NewServer(http.NotFoundHandler())
			base := upstream.URL
			upstream.Close()

			h := api.NewServer(api.WithWeather(weather.New("k", weather.WithBaseURL(base)))).Routes(ctx)
			w := do(h, "GET", "/weather?city=Paris", "")

			Convey("Then it should return 502", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(decode(w)["error"], ShouldEqual, "weather upstream unavailable")
			})
		})

		Convey("When the upstream sends garbage with 200", func() {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			}))
			defer upstream.Close()

			h := api.NewServer(api.WithWeather(weather.New("k", weather.WithBaseURL(upstream.URL)))).Routes(ctx)
			w := do(h, "GET", "/weather?city=Paris", "")

			Convey("Then it should return 502", func() {
				So(w.Code, ShouldEqual, http.StatusBadGateway)
				So(decode(w)["error"], ShouldEqual, "invalid upstream response")
			})
		})
	})
}
