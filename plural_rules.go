package l10n

import "strings"

func in(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

var (
	ruleNone = NewPluralRule("none", func(int) PluralCategory {
		return PluralOther
	})

	ruleOne = NewPluralRule("one", func(n int) PluralCategory {
		if n == 1 {
			return PluralOne
		}
		return PluralOther
	}, PluralOne)

	ruleZeroOne = NewPluralRule("0..1", func(n int) PluralCategory {
		if in(n, 0, 1) {
			return PluralOne
		}
		return PluralOther
	}, PluralOne)

	ruleFrench = NewPluralRule("fr", func(n int) PluralCategory {
		if n == 0 || n == 1 {
			return PluralOne
		}
		return PluralOther
	}, PluralOne)

	ruleLatvian = NewPluralRule("lv", func(n int) PluralCategory {
		switch {
		case n == 0:
			return PluralZero
		case n%10 == 1 && n%100 != 11:
			return PluralOne
		}
		return PluralOther
	}, PluralZero, PluralOne)

	ruleOneTwo = NewPluralRule("1_2_n", func(n int) PluralCategory {
		switch n {
		case 1:
			return PluralOne
		case 2:
			return PluralTwo
		}
		return PluralOther
	}, PluralOne, PluralTwo)

	ruleIrish = NewPluralRule("ga", func(n int) PluralCategory {
		switch {
		case n == 1:
			return PluralOne
		case n == 2:
			return PluralTwo
		case in(n, 3, 6):
			return PluralFew
		case in(n, 7, 10):
			return PluralMany
		}
		return PluralOther
	}, PluralOne, PluralTwo, PluralFew, PluralMany)

	ruleRomanian = NewPluralRule("ro", func(n int) PluralCategory {
		switch {
		case n == 1:
			return PluralOne
		case n == 0 || in(n%100, 1, 19):
			return PluralFew
		}
		return PluralOther
	}, PluralOne, PluralFew)

	ruleLithuanian = NewPluralRule("lt", func(n int) PluralCategory {
		switch {
		case n%10 == 1 && !in(n%100, 11, 19):
			return PluralOne
		case in(n%10, 2, 9) && !in(n%100, 11, 19):
			return PluralFew
		}
		return PluralOther
	}, PluralOne, PluralFew)

	ruleRussian = NewPluralRule("ru", func(n int) PluralCategory {
		switch {
		case n%10 == 1 && n%100 != 11:
			return PluralOne
		case in(n%10, 2, 4) && !in(n%100, 12, 14):
			return PluralFew
		case n%10 == 0 || in(n%10, 5, 9) || in(n%100, 11, 14):
			return PluralMany
		}
		return PluralOther
	}, PluralOne, PluralFew, PluralMany)

	ruleCzech = NewPluralRule("cs", func(n int) PluralCategory {
		switch {
		case n == 1:
			return PluralOne
		case in(n, 2, 4):
			return PluralFew
		}
		return PluralOther
	}, PluralOne, PluralFew)

	rulePolish = NewPluralRule("pl", func(n int) PluralCategory {
		switch {
		case n == 1:
			return PluralOne
		case in(n%10, 2, 4) && !in(n%100, 12, 14):
			return PluralFew
		case in(n%10, 0, 1) || in(n%10, 5, 9) || in(n%100, 12, 14):
			return PluralMany
		}
		return PluralOther
	}, PluralOne, PluralFew, PluralMany)

	ruleSlovenian = NewPluralRule("sl", func(n int) PluralCategory {
		switch {
		case n%100 == 1:
			return PluralOne
		case n%100 == 2:
			return PluralTwo
		case in(n%100, 3, 4):
			return PluralFew
		}
		return PluralOther
	}, PluralOne, PluralTwo, PluralFew)

	ruleMaltese = NewPluralRule("mt", func(n int) PluralCategory {
		switch {
		case n == 1:
			return PluralOne
		case n == 0 || in(n%100, 2, 10):
			return PluralFew
		case in(n%100, 11, 19):
			return PluralMany
		}
		return PluralOther
	}, PluralOne, PluralFew, PluralMany)

	ruleMacedonian = NewPluralRule("mk", func(n int) PluralCategory {
		if n%10 == 1 && n != 11 {
			return PluralOne
		}
		return PluralOther
	}, PluralOne)

	ruleWelsh = NewPluralRule("cy", func(n int) PluralCategory {
		switch n {
		case 0:
			return PluralZero
		case 1:
			return PluralOne
		case 2:
			return PluralTwo
		case 3:
			return PluralFew
		case 6:
			return PluralMany
		}
		return PluralOther
	}, PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany)

	ruleLangi = NewPluralRule("lag", func(n int) PluralCategory {
		switch n {
		case 0:
			return PluralZero
		case 1:
			return PluralOne
		}
		return PluralOther
	}, PluralZero, PluralOne)

	ruleTachelhit = NewPluralRule("shi", func(n int) PluralCategory {
		switch {
		case in(n, 0, 1):
			return PluralOne
		case in(n, 2, 10):
			return PluralFew
		}
		return PluralOther
	}, PluralOne, PluralFew)

	ruleBreton = NewPluralRule("br", func(n int) PluralCategory {
		mod10, mod100 := n%10, n%100
		switch {
		case mod10 == 1 && mod100 != 11 && mod100 != 71 && mod100 != 91:
			return PluralOne
		case mod10 == 2 && mod100 != 12 && mod100 != 72 && mod100 != 92:
			return PluralTwo
		case (mod10 == 3 || mod10 == 4 || mod10 == 9) &&
			!in(mod100, 10, 19) && !in(mod100, 70, 79) && !in(mod100, 90, 99):
			return PluralFew
		case n != 0 && n%1000000 == 0:
			return PluralMany
		}
		return PluralOther
	}, PluralOne, PluralTwo, PluralFew, PluralMany)

	ruleColognian = NewPluralRule("ksh", func(n int) PluralCategory {
		switch n {
		case 0:
			return PluralZero
		case 1:
			return PluralOne
		}
		return PluralOther
	}, PluralZero, PluralOne)

	ruleTamazight = NewPluralRule("tzm", func(n int) PluralCategory {
		if in(n, 0, 1) || in(n, 11, 99) {
			return PluralOne
		}
		return PluralOther
	}, PluralOne)

	ruleManx = NewPluralRule("gv", func(n int) PluralCategory {
		if in(n%10, 1, 2) || n%20 == 0 {
			return PluralOne
		}
		return PluralOther
	}, PluralOne)

	ruleScottishGaelic = NewPluralRule("gd", func(n int) PluralCategory {
		switch {
		case n == 1 || n == 11:
			return PluralOne
		case n == 2 || n == 12:
			return PluralTwo
		case in(n, 3, 10) || in(n, 13, 19):
			return PluralFew
		}
		return PluralOther
	}, PluralOne, PluralTwo, PluralFew)

	ruleArabic = NewPluralRule("ar", func(n int) PluralCategory {
		switch {
		case n == 0:
			return PluralZero
		case n == 1:
			return PluralOne
		case n == 2:
			return PluralTwo
		case in(n%100, 3, 10):
			return PluralFew
		case in(n%100, 11, 99):
			return PluralMany
		}
		return PluralOther
	}, PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany)

	ruleHebrew = NewPluralRule("he", func(n int) PluralCategory {
		switch {
		case n == 1:
			return PluralOne
		case n == 2:
			return PluralTwo
		case n != 0 && n%10 == 0:
			return PluralMany
		}
		return PluralOther
	}, PluralOne, PluralTwo, PluralMany)
)

// pluralFamilies lists the languages sharing each rule.
var pluralFamilies = []struct {
	rule      PluralRule
	languages string
}{
	{ruleNone, "az bm bo dz fa hu id ig ii ja jv ka kde kea km kn ko lo ms my sah ses sg th to tr vi wo yo zh"},
	{ruleOne, "af bem bg bn brx ca cgg chr da de dv ee el en eo es et eu fi fo fur fy gl gsw gu ha haw is it " +
		"jmc kaj kcg kk kl ksb ku lb lg mas ml mn mr nah nb nd ne nl nn no nr ny nyn om or pa pap ps pt rm rof " +
		"rwk saq seh sn so sq ss ssy st sv sw syr ta te teo tig tk tn ts ur ve vun wae xh xog zu"},
	{ruleZeroOne, "ak am bh fil tl guw hi ln mg nso ti wa"},
	{ruleFrench, "ff fr kab"},
	{ruleLatvian, "lv"},
	{ruleOneTwo, "iu kw naq se sma smi smj smn sms"},
	{ruleIrish, "ga"},
	{ruleRomanian, "ro mo"},
	{ruleLithuanian, "lt"},
	{ruleRussian, "be bs hr ru sh sr uk"},
	{ruleCzech, "cs sk"},
	{rulePolish, "pl"},
	{ruleSlovenian, "sl"},
	{ruleMaltese, "mt"},
	{ruleMacedonian, "mk"},
	{ruleWelsh, "cy"},
	{ruleLangi, "lag"},
	{ruleTachelhit, "shi"},
	{ruleBreton, "br"},
	{ruleColognian, "ksh"},
	{ruleTamazight, "tzm"},
	{ruleManx, "gv"},
	{ruleScottishGaelic, "gd"},
	{ruleArabic, "ar"},
	{ruleHebrew, "he"},
}

var pluralRegistry = buildPluralRegistry()

func buildPluralRegistry() map[string]PluralRule {
	registry := make(map[string]PluralRule)
	for _, family := range pluralFamilies {
		for _, code := range strings.Fields(family.languages) {
			registry[code] = family.rule
		}
	}
	return registry
}
