package reviews

import "github.com/CodeTest-git/testovoe-otsivy/internal/model"

// PlaceholderMessage is the caller-visible note attached to a result whose
// reviews are placeholders.
const PlaceholderMessage = "не удалось загрузить отзывы, показаны примеры"

// Placeholders returns the demo reviews shown when no real review could be
// recovered. Results carrying them must set Placeholder.
func Placeholders() []model.Review {
	return []model.Review{
		{
			Author: "Анна К.",
			Rating: 5,
			Date:   "2024-01-15",
			Text:   "Прекрасное место! Вежливый персонал и быстрое обслуживание. Обязательно вернусь.",
		},
		{
			Author: "Дмитрий",
			Rating: 4,
			Date:   "2024-01-10",
			Text:   "Хорошее качество, приемлемые цены. Немного пришлось подождать, но результат того стоил.",
		},
		{
			Author: "Елена С.",
			Rating: 5,
			Date:   "2024-01-05",
			Text:   "Всё понравилось, рекомендую друзьям и знакомым.",
		},
	}
}
