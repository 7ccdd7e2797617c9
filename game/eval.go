package game

// Volume estimates the open space reachable from pos within limit rounds.
func Volume(g *Grid, pos, limit int) int {
	return g.BFSProbe(pos, WithLimit(limit)).EmptyCount()
}

// HeadsInPocket returns the head positions of the other players met by a
// flood probe, keyed by player number. Players outside the pocket cannot
// interact with me and are left out.
func HeadsInPocket(pocket ProbeResult, me int) map[int]int {
	heads := make(map[int]int)
	for player := 0; player < MaxPlayers; player++ {
		if player == me {
			continue
		}
		if pos, ok := pocket.Position(Head(player)); ok {
			heads[player] = pos
		}
	}
	return heads
}

// SeesHeads reports whether any player head was met by the probe.
func SeesHeads(pocket ProbeResult) bool {
	for player := 0; player < MaxPlayers; player++ {
		if pocket.Contains(Head(player)) {
			return true
		}
	}
	return false
}

// Advantage scores my space against the largest opponent space as a value
// between -scale and scale relative to the largest space of all.
func Advantage(mine int, others []int, scale float64) float64 {
	best, most := 0, mine
	for _, v := range others {
		best = max(best, v)
		most = max(most, v)
	}
	if most == 0 {
		return 0
	}
	return float64(mine-best) * scale / float64(most)
}
