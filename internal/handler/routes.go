package handler

import "net/http"

// Routes builds the API route table. Kept here so tests exercise the
// same mux the server runs.
func Routes(games *GameHandler, rankings *RankingHandler, ws *WSHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", games.Health)
	mux.HandleFunc("GET /civs", games.GetCivs)

	mux.HandleFunc("POST /games", games.CreateGame)
	mux.HandleFunc("GET /games", games.ListGames)
	mux.HandleFunc("GET /games/{id}/state", games.GetState)
	mux.HandleFunc("GET /games/{id}/spectator", games.GetSpectator)
	mux.HandleFunc("POST /games/{id}/orders", games.SubmitOrders)
	mux.HandleFunc("POST /games/{id}/diplomacy", games.SubmitDiplomacy)
	mux.HandleFunc("POST /games/{id}/process", games.ForceProcess)
	mux.HandleFunc("GET /games/{id}/replay", games.GetReplay)

	mux.HandleFunc("GET /rankings", rankings.GetRankings)
	mux.HandleFunc("GET /rankings/{agent_id}", rankings.GetProfile)
	mux.HandleFunc("GET /matches", rankings.GetMatches)
	mux.HandleFunc("GET /matches/{id}", rankings.GetMatch)

	if ws != nil {
		mux.HandleFunc("GET /ws", ws.ServeWS)
	}

	return mux
}
