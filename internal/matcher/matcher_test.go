package matcher

import "testing"

func TestMatchesFullName(t *testing.T) {
	if !Matches("Mahmood", "Bravo Mahmood, gran pezzo") {
		t.Fatal("expected full-name substring match")
	}
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	if Matches("MAHMOOD", "stasera mahmood spacca") != Matches("mahmood", "STASERA MAHMOOD SPACCA") {
		t.Fatal("expected symmetric case folding")
	}
	if !Matches("MAHMOOD", "stasera mahmood spacca") {
		t.Fatal("expected uppercase artist to match lowercase text")
	}
}

func TestMatchesSingleNamePart(t *testing.T) {
	// "Colapesce Dimartino": either part alone is enough.
	if !Matches("Colapesce Dimartino", "dimartino sottovalutato") {
		t.Fatal("expected part match for a name part of length >= 4")
	}
}

func TestMatchesIgnoresShortParts(t *testing.T) {
	// Parts shorter than 4 runes never match on their own.
	if Matches("Il Tre", "tre canzoni stasera") {
		t.Fatal("expected short parts to be skipped")
	}
	if !Matches("Il Tre", "il tre ha convinto tutti") {
		t.Fatal("expected the full name to still match")
	}
}

func TestMatchesAcceptsEmbeddedSubstrings(t *testing.T) {
	// Accepted approximation: a >= 4 char part may match inside an
	// unrelated word.
	if !Matches("Anna Rossi", "rossiccio il tramonto stasera") {
		t.Fatal("the recall-biased heuristic should match embedded parts")
	}
}

func TestMatchesEmptyArtist(t *testing.T) {
	if Matches("", "qualsiasi testo") {
		t.Fatal("empty artist must never match")
	}
	if Matches("   ", "qualsiasi testo") {
		t.Fatal("blank artist must never match")
	}
}
