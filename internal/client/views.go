package client

import "github.com/cadalt0/Space/internal/model"

// Display shapes flatten server rows for view code: the natural key becomes
// "id", description becomes "desc", nullable text collapses to "", and
// collections are never nil.

type SpaceView struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Desc      string   `json:"desc"`
	Tags      []string `json:"tags"`
	Artwork   string   `json:"artwork"`
	Upvotes   int      `json:"upvotes"`
	Downvotes int      `json:"downvotes"`
}

type ShopView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	SpaceID  string   `json:"spaceId"`
	Tags     []string `json:"tags"`
	Up       int      `json:"up"`
	Down     int      `json:"down"`
	Location string   `json:"location"`
}

type ItemView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Desc      string   `json:"desc"`
	Owner     string   `json:"owner"`
	Available bool     `json:"available"`
	Image     string   `json:"image"`
	Tags      []string `json:"tags"`
	Up        int      `json:"up"`
	Down      int      `json:"down"`
	SpaceID   string   `json:"spaceId"`
}

type RequestView struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Desc      string   `json:"desc"`
	Requester string   `json:"requester"`
	Tags      []string `json:"tags"`
	Up        int      `json:"up"`
	Down      int      `json:"down"`
	SpaceID   string   `json:"spaceId"`
}

type HangoutView struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Date     string   `json:"date"`
	Location string   `json:"location"`
	Host     string   `json:"host"`
	Tags     []string `json:"tags"`
	Up       int      `json:"up"`
	Down     int      `json:"down"`
	SpaceID  string   `json:"spaceId"`
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func tags(l model.List) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

func SpaceViewFrom(sp *model.Space) SpaceView {
	return SpaceView{
		ID:        sp.SpaceID,
		Title:     text(sp.Title),
		Desc:      text(sp.Description),
		Tags:      tags(sp.Tags),
		Artwork:   text(sp.Artwork),
		Upvotes:   sp.Upvotes,
		Downvotes: sp.Downvotes,
	}
}

func ShopViewFrom(s *model.ShopWithSpace) ShopView {
	return ShopView{
		ID:       s.ShopID,
		Name:     s.Name,
		Desc:     text(s.Description),
		SpaceID:  s.SpaceID,
		Tags:     tags(s.Tags),
		Up:       s.Up,
		Down:     s.Down,
		Location: text(s.Location),
	}
}

func ItemViewFrom(it *model.LendItemWithSpace) ItemView {
	return ItemView{
		ID:        it.ItemID,
		Name:      it.Name,
		Desc:      text(it.Description),
		Owner:     it.Owner,
		Available: it.Available,
		Image:     text(it.Image),
		Tags:      tags(it.Tags),
		Up:        it.Up,
		Down:      it.Down,
		SpaceID:   text(it.SpaceID),
	}
}

func RequestViewFrom(rq *model.RequestWithSpace) RequestView {
	return RequestView{
		ID:        rq.RequestID,
		Title:     rq.Title,
		Desc:      text(rq.Description),
		Requester: rq.Requester,
		Tags:      tags(rq.Tags),
		Up:        rq.Up,
		Down:      rq.Down,
		SpaceID:   text(rq.SpaceID),
	}
}

func HangoutViewFrom(hg *model.HangoutWithSpace) HangoutView {
	return HangoutView{
		ID:       hg.HangID,
		Title:    hg.Title,
		Desc:     text(hg.Description),
		Date:     text(hg.Date),
		Location: text(hg.Location),
		Host:     hg.Host,
		Tags:     tags(hg.Tags),
		Up:       hg.Up,
		Down:     hg.Down,
		SpaceID:  text(hg.SpaceID),
	}
}
