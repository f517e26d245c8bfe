package stratagem

import "fmt"

// TreatyType classifies a treaty.
type TreatyType string

const (
	Alliance      TreatyType = "alliance"
	Trade         TreatyType = "trade"
	NonAggression TreatyType = "nap"
	Ceasefire     TreatyType = "ceasefire"
)

// Valid reports whether t names a known treaty type.
func (t TreatyType) Valid() bool {
	switch t {
	case Alliance, Trade, NonAggression, Ceasefire:
		return true
	}
	return false
}

// Message is one diplomacy message; recipient "public" is broadcast.
type Message struct {
	Sender    string `json:"from"`
	Recipient string `json:"to"`
	Content   string `json:"content"`
	Turn      int    `json:"turn"`
	Public    bool   `json:"public"`
}

// ProposalStatus is the proposal lifecycle state.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// TreatyProposal is an offer from proposer to target. Once accepted or
// rejected it is terminal.
type TreatyProposal struct {
	ID           string
	Proposer     string
	Target       string
	Type         TreatyType
	TurnProposed int
	Status       ProposalStatus
}

// Treaty binds two parties until one breaks it.
type Treaty struct {
	ID          string
	Type        TreatyType
	Parties     [2]string
	TurnCreated int
	BrokenBy    string
	TurnBroken  int
}

// Active reports whether the treaty is still in force.
func (t *Treaty) Active() bool { return t.BrokenBy == "" }

// HasParty reports whether pid is one of the treaty's parties.
func (t *Treaty) HasParty(pid string) bool {
	return t.Parties[0] == pid || t.Parties[1] == pid
}

// OtherParty returns the counterparty to pid.
func (t *Treaty) OtherParty(pid string) string {
	if t.Parties[0] == pid {
		return t.Parties[1]
	}
	return t.Parties[0]
}

// processDiplomacy applies every player's diplomatic actions: messages,
// new proposals, accepts, rejects, and treaty breaks. Breaking a
// treaty accrues a public trust penalty.
func (g *Game) processDiplomacy(orders map[string]*OrderSet, events *[]string) {
	for _, pid := range g.sortedPlayerIDs() {
		o := orders[pid]
		if o == nil || o.Diplomacy == nil {
			continue
		}
		d := o.Diplomacy

		for _, m := range d.Messages {
			to := m.To
			if to == "" {
				to = "public"
			}
			public := to == "public"
			g.Messages = append(g.Messages, Message{
				Sender: pid, Recipient: to, Content: m.Content,
				Turn: g.Turn, Public: public,
			})
			if public {
				content := m.Content
				if len(content) > 60 {
					content = content[:60]
				}
				*events = append(*events, fmt.Sprintf("💬 %s (public): %s", pid, content))
			}
		}

		for _, p := range d.Proposals {
			if _, ok := g.Players[p.Target]; !ok || p.Target == pid {
				continue
			}
			tt := TreatyType(p.Type)
			if p.Type == "" {
				tt = Alliance
			}
			if !tt.Valid() {
				continue
			}
			g.treatySeq++
			g.Proposals = append(g.Proposals, &TreatyProposal{
				ID:           fmt.Sprintf("tp_%d", g.treatySeq),
				Proposer:     pid,
				Target:       p.Target,
				Type:         tt,
				TurnProposed: g.Turn,
				Status:       ProposalPending,
			})
			*events = append(*events, fmt.Sprintf("📜 %s proposed %s to %s", pid, tt, p.Target))
		}

		for _, id := range d.AcceptTreaties {
			for _, tp := range g.Proposals {
				if tp.ID != id || tp.Target != pid || tp.Status != ProposalPending {
					continue
				}
				tp.Status = ProposalAccepted
				g.treatySeq++
				g.Treaties = append(g.Treaties, &Treaty{
					ID:          fmt.Sprintf("t_%d", g.treatySeq),
					Type:        tp.Type,
					Parties:     [2]string{tp.Proposer, tp.Target},
					TurnCreated: g.Turn,
				})
				*events = append(*events, fmt.Sprintf("🤝 %s & %s: %s formed!", tp.Proposer, pid, tp.Type))
			}
		}

		for _, id := range d.RejectTreaties {
			for _, tp := range g.Proposals {
				if tp.ID == id && tp.Target == pid && tp.Status == ProposalPending {
					tp.Status = ProposalRejected
				}
			}
		}

		for _, id := range d.BreakTreaties {
			for _, t := range g.Treaties {
				if t.ID != id || !t.HasParty(pid) || !t.Active() {
					continue
				}
				t.BrokenBy = pid
				t.TurnBroken = g.Turn
				g.TrustPenalties[pid]++
				*events = append(*events, fmt.Sprintf("💔 %s broke %s with %s!", pid, t.Type, t.OtherParty(pid)))
			}
		}
	}
}

// pendingProposalsFor lists open proposals directed at pid.
func (g *Game) pendingProposalsFor(pid string) []*TreatyProposal {
	var out []*TreatyProposal
	for _, tp := range g.Proposals {
		if tp.Target == pid && tp.Status == ProposalPending {
			out = append(out, tp)
		}
	}
	return out
}

// activeTreatiesFor lists in-force treaties involving pid.
func (g *Game) activeTreatiesFor(pid string) []*Treaty {
	var out []*Treaty
	for _, t := range g.Treaties {
		if t.HasParty(pid) && t.Active() {
			out = append(out, t)
		}
	}
	return out
}
