package roster

import "lol-overlay/internal/domain"

// KC returns the tracked roster: canonical player name to the accounts that
// player queues on. Alt accounts are listed in no particular order; the
// aggregator picks the best-ranked one at request time.
func KC() domain.Roster {
	return domain.Roster{
		// LEC roster
		"Canna": {
			{GameName: "Katze", TagLine: "myao", Region: "EUW"},
			{GameName: "K C", TagLine: "kcwin", Region: "EUW"},
		},
		"Yike":    {{GameName: "KC Yiken", TagLine: "1111", Region: "EUW"}},
		"Kyeahoo": {{GameName: "superkimchi", TagLine: "123", Region: "EUW"}},
		"Caliste": {
			{GameName: "KC NEXT ADKING", TagLine: "EUW", Region: "EUW"},
			{GameName: "I NEED SOLOQ", TagLine: "EUW", Region: "EUW"},
		},
		"Busio": {
			{GameName: "Busio JNG", TagLine: "NA1", Region: "EUW"},
			{GameName: "OG Mithy", TagLine: "Moo", Region: "EUW"},
		},
		// Blue roster
		"Tao": {{GameName: "xhtao", TagLine: "3100", Region: "EUW"}},
		"Yukino": {
			{GameName: "yukino cat", TagLine: "blue", Region: "EUW"},
			{GameName: "yukino cat", TagLine: "cat", Region: "EUW"},
		},
		"Kamiloo": {
			{GameName: "Limitless limits", TagLine: "FIRE", Region: "EUW"},
			{GameName: "TODOROKI RAICHI", TagLine: "rank1", Region: "EUW"},
			{GameName: "Labubu IRL", TagLine: "macha", Region: "EUW"},
		},
		"Hazel": {
			{GameName: "Antarctica", TagLine: "S B", Region: "EUW"},
			{GameName: "Hazel", TagLine: "KCorp", Region: "EUW"},
			{GameName: "Blue", TagLine: "HZL", Region: "EUW"},
			{GameName: "114", TagLine: "1405", Region: "EUW"},
		},
		"Prime": {
			{GameName: "Céleste", TagLine: "6162", Region: "EUW"},
			{GameName: "POBC", TagLine: "6162", Region: "EUW"},
		},
		// BS roster
		"BAASHH":  {{GameName: "TTV BAASHH", TagLine: "EUW", Region: "EUW"}},
		"MathisV": {{GameName: "MathisV", TagLine: "ARCHE", Region: "EUW"}},
		"Nsurr": {
			{GameName: "TripleMonstre", TagLine: "EUWFR", Region: "EUW"},
			{GameName: "Full Drip Nsurr", TagLine: "EUW", Region: "EUW"},
			{GameName: "Nsurr", TagLine: "EUWFR", Region: "EUW"},
		},
	}
}
