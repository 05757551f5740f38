package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/standup-lab/cadence/pkg/domain/model"
	domainConfig "github.com/standup-lab/cadence/pkg/domain/model/config"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Team holds the path to the team configuration file (roster + risk rules)
type Team struct {
	path string
}

// Flags returns CLI flags for team configuration
func (t *Team) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "team-config",
			Usage:       "Path to the team TOML file (roster and risk rules)",
			Required:    true,
			Sources:     cli.EnvVars("CADENCE_TEAM_CONFIG"),
			Destination: &t.path,
		},
	}
}

// teamFile is the TOML shape of the team configuration
type teamFile struct {
	Members []memberEntry `toml:"member"`
	Rules   rulesEntry    `toml:"rules"`
}

type memberEntry struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type rulesEntry struct {
	BlockerKeywords  []string `toml:"blocker_keywords"`
	ProgressKeywords []string `toml:"progress_keywords"`
	Lookback         int      `toml:"lookback"`
}

// Configure loads and validates the roster and risk rules
func (t *Team) Configure() (*model.Roster, *domainConfig.Rules, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, goerr.Wrap(ErrConfigNotFound, t.path)
		}
		return nil, nil, goerr.Wrap(err, "failed to read team config", goerr.V("path", t.path))
	}

	var file teamFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to parse team config", goerr.V("path", t.path))
	}

	if len(file.Members) == 0 {
		return nil, nil, goerr.Wrap(ErrInvalidConfig, "team config must list at least one member",
			goerr.V("path", t.path))
	}

	members := make([]model.Member, len(file.Members))
	for i, m := range file.Members {
		members[i] = model.Member{
			ID:   types.AuthorID(m.ID),
			Name: m.Name,
		}
	}

	roster, err := model.NewRoster(members)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "invalid roster", goerr.V("path", t.path))
	}

	rules := &domainConfig.Rules{
		BlockerKeywords:  file.Rules.BlockerKeywords,
		ProgressKeywords: file.Rules.ProgressKeywords,
		Lookback:         file.Rules.Lookback,
	}
	rules.Normalize()

	return roster, rules, nil
}
