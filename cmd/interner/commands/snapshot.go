package commands

import (
	"github.com/Sumatoshi-tech/interner/pkg/interner"
	"github.com/Sumatoshi-tech/interner/pkg/persist"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

// loadStrings reads the snapshot at path into an interner of width S.
func loadStrings[S symbol.Symbol[S]](s *session, a *app, path string) (*interner.Interner[S, string, byte], error) {
	codec, err := a.codecFor(path)
	if err != nil {
		return nil, err
	}

	opts, err := a.internerOptions()
	if err != nil {
		return nil, err
	}

	snap, err := persist.LoadSnapshot[S](path, codec, opts...)
	if err != nil {
		return nil, err
	}

	if want := snap.Strings.Hasher().Name(); snap.Hasher != want {
		s.logger.WarnContext(s.ctx, "snapshot hasher differs, hashes recomputed",
			"path", path,
			"saved_hasher", snap.Hasher,
			"hasher", want,
		)
	}

	s.logger.DebugContext(s.ctx, "snapshot loaded",
		"path", path,
		"entries", snap.Strings.Len(),
		"saved_symbol", snap.Symbol,
		"saved_hasher", snap.Hasher,
	)

	return snap.Strings, nil
}
