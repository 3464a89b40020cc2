package leaderboarddb

import "errors"

var ErrLeagueNotFound = errors.New("league not found")
