package brackets

import "strconv"

// AssignMedalGames pins the bronze game to the semifinal losers and the
// gold game to the semifinal winners, and aliases SF1/SF2 to the semifinal
// game numbers so refs like "W(SF1)" resolve. It reports whether the
// template and games allowed the wiring.
func AssignMedalGames(res *Resolver, tmpl *Template) bool {
	if len(tmpl.SemifinalGames) != 2 || tmpl.BronzeGame <= 0 || tmpl.GoldGame <= 0 {
		return false
	}
	sf1, sf2 := tmpl.SemifinalGames[0], tmpl.SemifinalGames[1]
	res.Set("SF1", strconv.Itoa(sf1))
	res.Set("SF2", strconv.Itoa(sf2))

	if _, ok := res.Game(tmpl.BronzeGame); !ok {
		return false
	}
	if _, ok := res.Game(tmpl.GoldGame); !ok {
		return false
	}
	res.Pin(tmpl.BronzeGame, OutcomeToken(Loser, sf1), OutcomeToken(Loser, sf2))
	res.Pin(tmpl.GoldGame, OutcomeToken(Winner, sf1), OutcomeToken(Winner, sf2))
	return true
}

// Podium lists the final placings once the medal games are decided.
// Unknown places are left empty.
type Podium struct {
	Gold   string `json:"gold,omitempty"`
	Silver string `json:"silver,omitempty"`
	Bronze string `json:"bronze,omitempty"`
	Fourth string `json:"fourth,omitempty"`
}

// FinalRanking reads the medal placings out of a resolved bracket.
func FinalRanking(res *Resolver, tmpl *Template) Podium {
	final := func(token string) string {
		if code := res.Resolve(token); IsCodeFinal(code) {
			return code
		}
		return ""
	}
	var p Podium
	if tmpl.GoldGame > 0 {
		p.Gold = final(OutcomeToken(Winner, tmpl.GoldGame))
		p.Silver = final(OutcomeToken(Loser, tmpl.GoldGame))
	}
	if tmpl.BronzeGame > 0 {
		p.Bronze = final(OutcomeToken(Winner, tmpl.BronzeGame))
		p.Fourth = final(OutcomeToken(Loser, tmpl.BronzeGame))
	}
	return p
}
