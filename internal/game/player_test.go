package game

import "testing"

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(7)
	if p.Name != "unknown" {
		t.Errorf("expected name %q, got %q", "unknown", p.Name)
	}
	if p.Seat != -1 {
		t.Errorf("expected seat -1, got %d", p.Seat)
	}
	if !p.SitOut {
		t.Error("expected a new player to be sat out")
	}
}

func TestBetMovesChipsToBet(t *testing.T) {
	p := NewPlayer(7)
	p.UpdateChips(1000, 0)
	p.Bet(300)
	if p.Chips() != 700 {
		t.Errorf("expected 700 chips, got %d", p.Chips())
	}
	if p.CurrentBet() != 300 {
		t.Errorf("expected bet 300, got %d", p.CurrentBet())
	}
}

func TestBetOverdraftPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic betting more than the player has")
		}
	}()
	p := NewPlayer(7)
	p.UpdateChips(100, 0)
	p.Bet(200)
}

func TestUpdateChipsNegativeLeavesValue(t *testing.T) {
	p := NewPlayer(7)
	p.UpdateChips(1000, 200)
	p.UpdateChips(-1, 300)
	if p.Chips() != 1000 {
		t.Errorf("expected chips untouched at 1000, got %d", p.Chips())
	}
	if p.CurrentBet() != 300 {
		t.Errorf("expected bet 300, got %d", p.CurrentBet())
	}
	p.UpdateChips(500, -1)
	if p.CurrentBet() != 300 {
		t.Errorf("expected bet untouched at 300, got %d", p.CurrentBet())
	}
}

func TestRebuyIsZeroSum(t *testing.T) {
	p := NewPlayer(7)
	p.UpdateMoney([]int{ChipsCurrency}, []int{5000})
	p.UpdateChips(100, 0)
	p.Rebuy(2000)
	if p.Chips() != 2100 {
		t.Errorf("expected 2100 chips, got %d", p.Chips())
	}
	if p.Money() != 3000 {
		t.Errorf("expected 3000 in bankroll, got %d", p.Money())
	}
}

func TestRebuyWithoutBankrollEntry(t *testing.T) {
	p := NewPlayer(7)
	p.Rebuy(2000)
	if p.Chips() != 2000 {
		t.Errorf("expected 2000 chips, got %d", p.Chips())
	}
	if len(p.Bankroll) != 0 {
		t.Errorf("expected no bankroll entry to be created, got %v", p.Bankroll)
	}
}

func TestResetHandKeepsLedger(t *testing.T) {
	p := NewPlayer(7)
	p.UpdateChips(1000, 0)
	p.Bet(300)
	p.UpdateCards([]int{10, 23})
	p.Folded = true

	p.ResetHand()

	if p.CurrentBet() != 0 {
		t.Errorf("expected bet reset to 0, got %d", p.CurrentBet())
	}
	if p.Cards != nil {
		t.Errorf("expected cards cleared, got %v", p.Cards)
	}
	if p.Folded {
		t.Error("expected fold flag cleared")
	}
	if p.Chips() != 700 {
		t.Errorf("expected chips preserved at 700, got %d", p.Chips())
	}
}
