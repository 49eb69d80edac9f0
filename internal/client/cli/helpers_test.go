package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/hitenchhabria09/film-folio-pro/internal/catalog"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/config"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/repositories/kv"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/services"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/token"
	"github.com/hitenchhabria09/film-folio-pro/internal/common"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	out   *bytes.Buffer
	store *kv.SQLStore
}

// newTestApp builds an App over an in-memory store and the mock catalog.
// input feeds the text prompts line by line.
func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()

	store, err := kv.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	nop := logging.NewNop()
	cat := catalog.NewMock()
	session := services.NewSessionService(store, token.NewCodec(common.DefaultTokenSecret), services.SessionOptions{}, nop)
	fav := services.NewFavoritesService(cat, 4, nop)
	share := services.NewShareService(services.S3Config{}, fav)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(cfg, nop, session, cat, fav, share)
	out := &bytes.Buffer{}
	a.out = out
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n"))
	t.Cleanup(a.Close)

	return &testApp{App: a, out: out, store: store}
}

func stubPassword(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })

	i := 0
	getPassword = func(io.Writer) (string, error) {
		pw := passwords[i%len(passwords)]
		i++
		return pw, nil
	}
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}
