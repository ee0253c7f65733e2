package pipeline

const mainPageHTML = `<!DOCTYPE html>
<html><head><title>Кофейня Зерно, Москва — Яндекс Карты</title></head><body>
<h1 class="orgpage-header-view__header">Кофейня Зерно</h1>
<div class="orgpage-header-view__rating">
  <span class="business-summary-rating-badge-view__rating-text">4,6</span>
</div>
<div class="media-wrapper">
  <img src="https://avatars.mds.yandex.net/get-altay/1001/photo-a/XXL">
  <img src="https://avatars.mds.yandex.net/get-altay/1002/photo-b/L">
  <img src="https://avatars.mds.yandex.net/get-altay/1001/photo-a/S">
  <img src="https://avatars.mds.yandex.net/get-ugc-review/1003/photo-c/M">
</div>
</body></html>`

const reviewsPage1HTML = `<!DOCTYPE html>
<html><head><title>Отзывы о Кофейня Зерно</title></head><body>
<div class="business-review-view">
  <div class="business-review-view__author-name">Мария</div>
  <meta itemprop="datePublished" content="2024-05-12T10:00:00.000Z">
  <div class="business-rating-badge-view__stars" aria-label="Оценка 5 Из 5"></div>
  <span itemprop="reviewBody">Отличный кофе и свежая выпечка каждый день.</span>
</div>
<div class="business-review-view">
  <div class="business-review-view__author-name">Игорь</div>
  <meta itemprop="datePublished" content="2024-05-10T08:00:00.000Z">
  <div class="business-rating-badge-view__stars" aria-label="Оценка 3 Из 5"></div>
  <span itemprop="reviewBody">Долго ждали заказ, но персонал извинился.</span>
  <div class="business-review-view__actions">Подписаться</div>
</div>
<a class="pagination" href="/maps/org/kofejnya_zerno/123456789/reviews/?page=2">Далее</a>
</body></html>`

const reviewsPage2HTML = `<!DOCTYPE html>
<html><head><title>Отзывы о Кофейня Зерно</title></head><body>
<div class="business-review-view">
  <div class="business-review-view__author-name">Мария</div>
  <meta itemprop="datePublished" content="2024-05-12T10:00:00.000Z">
  <span itemprop="reviewBody">Отличный кофе и свежая выпечка каждый день.</span>
</div>
<div class="business-review-view">
  <div class="business-review-view__author-name">Олег</div>
  <meta itemprop="datePublished" content="2024-04-01T12:00:00.000Z">
  <span itemprop="reviewBody">Вкусные круассаны, обязательно вернусь ещё раз.</span>
</div>
</body></html>`

const emptyReviewsHTML = `<!DOCTYPE html>
<html><head><title>Отзывы</title></head><body><div class="business-reviews-card-view"></div></body></html>`

const stateLogoMainHTML = `<!DOCTYPE html>
<html><head><title>Кафе Луна, Казань — Яндекс Карты</title></head><body>
<h1 class="orgpage-header-view__header">Кафе Луна</h1>
<div class="media-wrapper">
  <img src="https://avatars.mds.yandex.net/get-altay/555/logo-hash/XXXL">
  <img src="https://avatars.mds.yandex.net/get-altay/1002/photo-b/L">
</div>
<script>window.__INITIAL_STATE__ = {"company": {"name": "Кафе Луна", "logo": {"urlTemplate": "https://avatars.mds.yandex.net/get-altay/555/logo-hash/%s"}}};</script>
</body></html>`

const stateReviewsHTML = `<!DOCTYPE html>
<html><head><title>Отзывы</title></head><body>
<script>window.__INITIAL_STATE__ = {
  "orgpage": {
    "reviewResults": {
      "reviews": [
        {"author": {"name": "Аня"}, "rating": 5, "updatedTime": "2024-03-01T10:00:00Z", "text": "Ок!"},
        {"author": {"name": "Борис"}, "rating": 4, "updatedTime": "2024-03-02T10:00:00Z", "text": "Супер!"},
        {"author": {"name": "Вера"}, "rating": 5, "updatedTime": "2024-03-03T10:00:00Z", "text": "Тихо, уютно и очень вкусные десерты."}
      ]
    }
  }
};</script>
</body></html>`
