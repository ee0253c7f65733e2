package extract

const reviewsPageHTML = `<!DOCTYPE html>
<html><head><title>Кофейня Добро, Москва — Яндекс Карты</title>
<meta property="og:image" content="https://avatars.mds.yandex.net/get-altay/999/og-image-hash/XXL">
</head><body>
<h1 class="orgpage-header-view__header">Кофейня Добро</h1>
<div itemprop="aggregateRating">
  <meta itemprop="ratingValue" content="4.8">
  <meta itemprop="reviewCount" content="321">
</div>
<div class="business-review-view">
  <div itemprop="author"><span itemprop="name">Мария Иванова</span></div>
  <div class="business-review-view__author-caption">Знаток города 5 уровня</div>
  <div class="user-icon-view__icon" style="background-image: url(https://avatars.mds.yandex.net/get-yapic/1450/abc-def/islands-68)"></div>
  <a class="business-review-view__link" href="/maps/user/mariya123/">Мария Иванова</a>
  <div class="business-rating-badge-view__stars" aria-label="Оценка 4 Из 5"></div>
  <meta itemprop="datePublished" content="2024-05-12T10:00:00.000Z">
  <span itemprop="reviewBody">Отличный кофе и очень вежливые бариста!</span>
  <div class="business-review-view__actions">Подписаться</div>
</div>
<div class="business-review-view">
  <div class="business-review-view__author-name">Пётр</div>
  <div class="business-rating-badge-view__stars">
    <span class="business-rating-badge-view__star _full"></span>
    <span class="business-rating-badge-view__star _full"></span>
    <span class="business-rating-badge-view__star _full"></span>
    <span class="business-rating-badge-view__star _empty"></span>
    <span class="business-rating-badge-view__star _empty"></span>
  </div>
  <span class="business-review-view__date">12 мая 2024</span>
  <div class="business-review-view__body-text">88%</div>
  <div class="spoiler-view__text-container">Долго ждал заказ, но десерты вкусные.</div>
</div>
<div class="business-review-view">
  <div class="business-review-view__author-name">Аноним с пустым отзывом</div>
  <div class="business-review-view__body-text">Ок</div>
</div>
<div class="business-review-view">
  <div class="business-review-view__author-name">Ольга</div>
  <div><p>Подписаться</p><p>Зашла случайно и осталась на весь вечер, атмосфера замечательная</p></div>
</div>
<a class="pagination" href="/maps/org/kofejnya_dobro/123456789/reviews/?page=2">Далее</a>
</body></html>`

const stateOnlyHTML = `<html><head><title>Кафе</title></head><body>
<script>window.__INITIAL_STATE__ = {
  "stack": [{"id": 1}],
  "orgpage": {
    "company": {"name": "Кафе Луна", "logo": {"urlTemplate": "https://avatars.mds.yandex.net/get-altay/555/logo-hash/%s"}},
    "reviewResults": {
      "reviews": [
        {"author": {"name": "Ирина", "avatarUrl": "https://avatars.mds.yandex.net/get-yapic/1/irina/{size}", "professionLevel": "Знаток города 3 уровня", "profileUrl": "/maps/user/irina/"}, "rating": 5, "updatedTime": "2024-01-15T09:00:00Z", "text": "Лучшие сырники в районе, рекомендую!"},
        {"authorName": "Без аватара", "stars": "3", "createdAt": 1700000000000, "comment": "Нормально, но шумно вечером."},
        {"id": "not a review"}
      ]
    }
  }
};</script>
</body></html>`

const inlineOnlyHTML = `<html><body>
<script>var a = {"reviews": [{"name": "Сергей", "score": 4, "date": "2024-02-01", "body": "Хорошее место для встреч с друзьями."}]};</script>
<script>var b = {"reviews": [{"name": "broken", "text": "missing bracket"</script>
<script>var c = {"reviews": [{'name': 'Анна', 'rating': 2, 'text': 'Холодный суп, не понравилось.',}]};</script>
</body></html>`

const galleryHTML = `<html><body>
<img class="photo" src="https://avatars.mds.yandex.net/get-altay/1001/photo-a/S">
<img class="photo" src="https://avatars.mds.yandex.net/get-altay/1001/photo-a/XXL">
<img class="photo" src="//avatars.mds.yandex.net/get-ugc-review/2002/photo-b/M">
<script>{"photos":[{"urlTemplate":"https:\/\/avatars.mds.yandex.net\/get-altay\/1003\/photo-c\/%s"}]}</script>
<img src="https://avatars.mds.yandex.net/get-altay/1004/photo-d/L">
<img src="https://avatars.mds.yandex.net/get-altay/1005/photo-e/L">
</body></html>`
