package config

// DefaultCatalog returns the built-in catalog used when no catalog file is
// present.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Spots: []Spot{
			{ID: "101", Name: "Aitutaki", Country: "Cook Islands", Lat: -18.85, Lng: -159.78, Category: "paradise",
				Aliases: []string{"아이투타키", "쿡 제도"}, Keywords: []string{"휴양", "비치", "신혼여행"}},
			{ID: "102", Name: "Santorini", Country: "Greece", Lat: 36.39, Lng: 25.46, Category: "paradise",
				Aliases: []string{"산토리니", "그리스"}, Keywords: []string{"지중해", "일몰", "로맨틱"}},
			{ID: "103", Name: "Palau", Country: "Palau", Lat: 7.51, Lng: 134.58, Category: "paradise",
				Aliases: []string{"팔라우"}, Keywords: []string{"다이빙", "해파리"}},
			{ID: "104", Name: "Gili Meno", Country: "Indonesia", Lat: -8.35, Lng: 116.05, Category: "paradise",
				Aliases: []string{"길리 메노", "길리", "인도네시아"}, Keywords: []string{"거북이", "스노클링"}},
			{ID: "105", Name: "Boracay", Country: "Philippines", Lat: 11.96, Lng: 121.92, Category: "paradise",
				Aliases: []string{"보라카이", "필리핀"}, Keywords: []string{"화이트비치", "석양"}},
			{ID: "201", Name: "Iceland", Country: "Iceland", Lat: 64.96, Lng: -19.02, Category: "nature",
				Aliases: []string{"아이슬란드"}, Keywords: []string{"오로라", "빙하", "폭포"}},
			{ID: "202", Name: "Yellowknife", Country: "Canada", Lat: 62.45, Lng: -114.37, Category: "nature",
				Aliases: []string{"옐로나이프", "캐나다"}, Keywords: []string{"오로라", "겨울"}},
			{ID: "205", Name: "Swiss Alps", Country: "Switzerland", Lat: 46.81, Lng: 8.22, Category: "nature",
				Aliases: []string{"스위스", "알프스", "switzerland", "alps", "융프라우"}, Keywords: []string{"하이킹", "기차"}},
			{ID: "301", Name: "Paris", Country: "France", Lat: 48.85, Lng: 2.35, Category: "urban",
				Aliases: []string{"파리", "프랑스", "에펠탑"}, Keywords: []string{"예술", "박물관", "카페"}},
			{ID: "303", Name: "New York", Country: "USA", Lat: 40.71, Lng: -74.00, Category: "urban",
				Aliases: []string{"뉴욕", "맨해튼", "nyc"}, Keywords: []string{"야경", "뮤지컬"}},
			{ID: "304", Name: "Tokyo", Country: "Japan", Lat: 35.67, Lng: 139.76, Category: "urban",
				Aliases: []string{"도쿄", "동경", "일본"}, Keywords: []string{"쇼핑", "스시"}},
			{ID: "401", Name: "Danang", Country: "Vietnam", Lat: 16.05, Lng: 108.20, Category: "nearby",
				Aliases: []string{"다낭", "베트남", "경기도 다낭시"}, Keywords: []string{"리조트", "가족여행"}},
			{ID: "403", Name: "Osaka", Country: "Japan", Lat: 34.69, Lng: 135.50, Category: "nearby",
				Aliases: []string{"오사카", "간사이", "일본"}, Keywords: []string{"먹방", "유니버설"}},
			{ID: "405", Name: "Fukuoka", Country: "Japan", Lat: 33.59, Lng: 130.40, Category: "nearby",
				Aliases: []string{"후쿠오카", "일본"}, Keywords: []string{"온천", "라멘"}},
			{ID: "501", Name: "Serengeti", Country: "Tanzania", Lat: -2.33, Lng: 34.83, Category: "adventure",
				Aliases: []string{"세렝게티", "탄자니아"}, Keywords: []string{"사파리"}},
			{ID: "601", Name: "Seoul", Country: "South Korea", Lat: 37.56, Lng: 126.97, Category: "urban",
				Aliases: []string{"서울", "한국"}},
			{ID: "602", Name: "Jeju", Country: "South Korea", Lat: 33.49, Lng: 126.53, Category: "paradise",
				Aliases: []string{"제주", "제주도"}},
			{ID: "603", Name: "Bangkok", Country: "Thailand", Lat: 13.75, Lng: 100.50, Category: "nearby",
				Aliases: []string{"방콕", "태국"}},
			{ID: "604", Name: "Taipei", Country: "Taiwan", Lat: 25.03, Lng: 121.56, Category: "nearby",
				Aliases: []string{"타이베이", "타이페이", "대만"}},
			{ID: "605", Name: "Barcelona", Country: "Spain", Lat: 41.38, Lng: 2.17, Category: "urban",
				Aliases: []string{"바르셀로나", "스페인"}},
		},
		Cities: []City{
			{Name: "Pacific Ocean", Lat: 0.0, Lng: -160.0, Priority: 1},
			{Name: "Atlantic Ocean", Lat: 10.0, Lng: -30.0, Priority: 1},
			{Name: "Indian Ocean", Lat: -20.0, Lng: 80.0, Priority: 1},
			{Name: "Arctic Ocean", Lat: 85.0, Lng: 0.0, Priority: 1},
			{Name: "Asia", Lat: 45.0, Lng: 90.0, Priority: 1},
			{Name: "Europe", Lat: 50.0, Lng: 15.0, Priority: 1},
			{Name: "Africa", Lat: 5.0, Lng: 20.0, Priority: 1},
			{Name: "Antarctica", Lat: -82.0, Lng: 0.0, Priority: 1},
			{Name: "Kyoto", Country: "Japan", Lat: 35.01, Lng: 135.77, Priority: 2},
			{Name: "London", Country: "United Kingdom", Lat: 51.51, Lng: -0.13, Priority: 2},
			{Name: "Rome", Country: "Italy", Lat: 41.90, Lng: 12.50, Priority: 2},
			{Name: "Cairo", Country: "Egypt", Lat: 30.04, Lng: 31.24, Priority: 2},
			{Name: "Sydney", Country: "Australia", Lat: -33.87, Lng: 151.21, Priority: 2},
			{Name: "Lisbon", Country: "Portugal", Lat: 38.72, Lng: -9.14, Priority: 2},
			{Name: "Reykjavik", Country: "Iceland", Lat: 64.15, Lng: -21.94, Priority: 2},
			{Name: "Ushuaia", Country: "Argentina", Lat: -54.80, Lng: -68.30, Priority: 2},
		},
		Synonyms: map[string]string{
			"교토":   "Kyoto",
			"런던":   "London",
			"로마":   "Rome",
			"리스본":  "Lisbon",
			"시드니":  "Sydney",
			"la":   "Los Angeles",
			"사이공":  "Ho Chi Minh City",
			"호치민":  "Ho Chi Minh City",
			"싱가폴":  "Singapore",
			"싱가포르": "Singapore",
		},
		Concepts: []string{
			"paradise", "nature", "urban", "nearby", "adventure",
			"휴양", "오로라", "사파리", "신혼여행", "배낭여행", "맛집", "힐링",
		},
		Fallback: FallbackConfig{
			Gallery: []FallbackImage{
				{
					ID:          "fallback-beach",
					Regular:     "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=1080",
					Small:       "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=400",
					Description: "Tropical beach",
				},
				{
					ID:          "fallback-mountains",
					Regular:     "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=1080",
					Small:       "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=400",
					Description: "Mountain landscape",
				},
			},
			Trending: []string{
				"Osaka", "Danang", "Palau", "Fukuoka", "Tokyo",
				"Santorini", "Boracay", "Paris", "New York", "Iceland",
			},
		},
	}
}
