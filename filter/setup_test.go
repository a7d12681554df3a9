package filter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilter_Defaults(t *testing.T) {
	t.Parallel()
	f := NewFilter(Config{Tracer: &fakeTracer{}, Logger: nopLogger{}})

	require.False(t, f.Disabled())
	require.Len(t, f.decorators, 1)
	assert.IsType(t, &StandardTags{}, f.decorators[0])
	assert.Equal(t, DefaultAsyncTimeout, f.asyncTimeout)

	r := httptest.NewRequest("GET", "/anything", nil)
	assert.True(t, f.isTraced(r))
	assert.Equal(t, "GET", f.operationName(r))
}

func TestNewFilter_NilTracerDisables(t *testing.T) {
	t.Parallel()
	f := NewFilter(Config{Logger: nopLogger{}})

	assert.True(t, f.Disabled())
}

func TestNewFilter_EmptyDecoratorSliceDisablesDecoration(t *testing.T) {
	t.Parallel()
	ft := &fakeTracer{}
	f := NewFilter(Config{
		Tracer:     ft,
		Logger:     nopLogger{},
		Decorators: []SpanDecorator{},
	})

	assert.Empty(t, f.decorators)

	// Spans are still created and finished without any decoration.
	h := f.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	require.Equal(t, 1, ft.spanCount())
	span := ft.lastSpan()
	assert.Equal(t, int32(1), span.ends.Load())
	_, tagged := span.attr("http.method")
	assert.False(t, tagged)
}

func TestNewFilter_NonPositiveTimeoutUsesDefault(t *testing.T) {
	t.Parallel()
	f := NewFilter(Config{
		Tracer:       &fakeTracer{},
		Logger:       nopLogger{},
		AsyncTimeout: -time.Second,
	})

	assert.Equal(t, DefaultAsyncTimeout, f.asyncTimeout)
}

func TestNewFilter_ConfiguredTimeoutKept(t *testing.T) {
	t.Parallel()
	f := NewFilter(Config{
		Tracer:       &fakeTracer{},
		Logger:       nopLogger{},
		AsyncTimeout: 5 * time.Second,
	})

	assert.Equal(t, 5*time.Second, f.asyncTimeout)
}

func TestNewFilter_DefaultLoggerConstructed(t *testing.T) {
	t.Parallel()
	f := NewFilter(Config{Tracer: &fakeTracer{}})

	assert.NotNil(t, f.log)
}
