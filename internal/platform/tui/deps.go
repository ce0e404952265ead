package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/game"
	"github.com/vovakirdan/fire-drill/internal/i18n"
	"github.com/vovakirdan/fire-drill/internal/level"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

// Deps is what every session is built from. Catalog is required; the rest
// fall back to built-in defaults.
type Deps struct {
	Catalog  *level.Catalog
	Tips     *level.Tips
	Rules    config.Rules
	Messages *i18n.Catalog
	Scores   *storage.Store // nil disables the leaderboard mirror
	Logger   *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

func (d Deps) messages() *i18n.Catalog {
	if d.Messages == nil {
		return i18n.Default()
	}
	return d.Messages
}

// NewStore creates the private game store of one player session.
func (d Deps) NewStore(player string, seed int64) *game.Store {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rules := d.Rules
	if rules.Validate() != nil {
		rules = config.DefaultRules()
	}

	opts := []game.Option{
		game.WithRules(rules),
		game.WithTips(d.Tips),
		game.WithMessages(d.messages()),
		game.WithSeed(seed),
		game.WithLogger(d.logger().With("player", player)),
	}
	if d.Scores != nil {
		opts = append(opts, game.WithScoreSink(d.Scores.ForPlayer(player)))
	}
	return game.NewStore(d.Catalog, opts...)
}
