package i18n

import (
	"fmt"

	"BazaarBot/entity"
)

// Lang is one of the two storefront locales. It is chosen once per user
// at registration and frozen for the lifetime of any dialog session.
type Lang string

const (
	Fa Lang = entity.LangFa
	En Lang = entity.LangEn
)

// Pick maps a stored language code to a Lang, defaulting to Farsi.
func Pick(code string) Lang {
	if code == entity.LangEn {
		return En
	}
	return Fa
}

type message struct {
	fa string
	en string
}

// T renders the message for key in the given locale. Unknown keys render
// as the key itself so a missing entry is visible in chat during testing
// instead of silently dropping the reply.
func T(l Lang, key string, args ...any) string {
	m, ok := messages[key]
	if !ok {
		return key
	}
	text := m.fa
	if l == En {
		text = m.en
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

var messages = map[string]message{
	// Generic
	"error.generic": {
		fa: "❌ خطایی رخ داد، لطفاً دوباره تلاش کنید.",
		en: "❌ An error occurred, please try again.",
	},
	"error.user_not_found": {
		fa: "❌ کاربر یافت نشد.",
		en: "❌ User not found.",
	},
	"admin.only": {
		fa: "❌ این عملیات فقط برای ادمین در دسترس است.",
		en: "❌ This action is available only for administrators.",
	},
	"admin.welcome": {
		fa: "🛠 به پنل مدیریت خوش آمدید!",
		en: "🛠 Welcome to the admin panel!",
	},

	// Product creation wizard
	"product.ask_name": {
		fa: "📦 نام محصول را وارد کنید:",
		en: "📦 Enter product name:",
	},
	"product.ask_price": {
		fa: "💰 قیمت محصول را وارد کنید (به تومان):",
		en: "💰 Enter product price (in Toman):",
	},
	"product.invalid_price": {
		fa: "❌ قیمت نامعتبر است. لطفاً دوباره تلاش کنید.",
		en: "❌ Invalid price. Please try again.",
	},
	"product.ask_description": {
		fa: "📝 توضیحات محصول را وارد کنید (اختیاری، برای رد شدن «-» بفرستید):",
		en: "📝 Enter product description (optional, send \"-\" to skip):",
	},
	"product.ask_photo": {
		fa: "🖼 عکس محصول را ارسال کنید:",
		en: "🖼 Send the product photo:",
	},
	"product.photo_required": {
		fa: "❌ لینک قابل قبول نیست. لطفاً خود عکس را ارسال کنید.",
		en: "❌ Links are not accepted. Please send the photo itself.",
	},
	"product.ask_category": {
		fa: "📁 دسته‌بندی محصول را انتخاب کنید:",
		en: "📁 Select product category:",
	},
	"product.ask_stock": {
		fa: "📊 موجودی انبار را وارد کنید:",
		en: "📊 Enter stock quantity:",
	},
	"product.invalid_stock": {
		fa: "❌ موجودی نامعتبر است. لطفاً دوباره تلاش کنید.",
		en: "❌ Invalid stock. Please try again.",
	},
	"product.created": {
		fa: "✅ محصول با موفقیت اضافه شد!",
		en: "✅ Product added successfully!",
	},
	"product.create_failed": {
		fa: "❌ خطا در افزودن محصول رخ داد.",
		en: "❌ Error occurred while adding product.",
	},
	"product.not_found": {
		fa: "❌ محصول یافت نشد.",
		en: "❌ Product not found.",
	},
	"product.categories_failed": {
		fa: "❌ خطا در دریافت دسته‌بندی‌ها.",
		en: "❌ Error fetching categories.",
	},

	// Product update wizard (prompts show the current value)
	"product.ask_name_current": {
		fa: "📦 نام جدید محصول را وارد کنید (برای حفظ مقدار فعلی «-» بفرستید):\n\nنام فعلی: %s",
		en: "📦 Enter new product name (send \"-\" to keep current):\n\nCurrent: %s",
	},
	"product.ask_price_current": {
		fa: "💰 قیمت جدید محصول را وارد کنید (به تومان):\n\nقیمت فعلی: %d",
		en: "💰 Enter new product price (in Toman):\n\nCurrent: %d",
	},
	"product.ask_description_current": {
		fa: "📝 توضیحات جدید محصول را وارد کنید:\n\nتوضیحات فعلی: %s",
		en: "📝 Enter new product description:\n\nCurrent: %s",
	},
	"product.ask_photo_current": {
		fa: "🖼 عکس جدید محصول را ارسال کنید (برای حفظ عکس فعلی «-» بفرستید):",
		en: "🖼 Send a new product photo (send \"-\" to keep current):",
	},
	"product.ask_category_current": {
		fa: "📁 دسته‌بندی جدید محصول را انتخاب کنید:\n\nدسته‌بندی فعلی: %s",
		en: "📁 Select new product category:\n\nCurrent: %s",
	},
	"product.ask_stock_current": {
		fa: "📊 موجودی انبار جدید را وارد کنید:\n\nموجودی فعلی: %d",
		en: "📊 Enter new stock quantity:\n\nCurrent: %d",
	},
	"product.updated": {
		fa: "✅ محصول با موفقیت به‌روزرسانی شد!",
		en: "✅ Product updated successfully!",
	},
	"product.select_edit": {
		fa: "✏️ محصول مورد نظر برای ویرایش را انتخاب کنید:",
		en: "✏️ Select product to edit:",
	},

	// Order placement
	"order.cart_empty": {
		fa: "❌ سبد خرید شما خالی است.",
		en: "❌ Your cart is empty.",
	},
	"order.review": {
		fa: "📋 لطفاً اطلاعات سفارش خود را بررسی کنید:\n\n👤 نام: %s\n📞 تلفن: %s\n📍 آدرس: %s\n\n🛒 محصولات:\n%s\n\n💰 مجموع: %d تومان\n\nآیا اطلاعات صحیح است؟",
		en: "📋 Please review your order:\n\n👤 Name: %s\n📞 Phone: %s\n📍 Address: %s\n\n🛒 Products:\n%s\n\n💰 Total: %d Toman\n\nIs the information correct?",
	},
	"order.review_item": {
		fa: "%s - %d عدد - %d تومان",
		en: "%s - %d pcs - %d Toman",
	},
	"order.confirm_btn": {
		fa: "✅ تایید و ادامه",
		en: "✅ Confirm",
	},
	"order.cancel_btn": {
		fa: "❌ انصراف",
		en: "❌ Cancel",
	},
	"order.cancelled": {
		fa: "سفارش لغو شد.",
		en: "Order cancelled.",
	},
	"order.registered": {
		fa: "✅ سفارش شما ثبت شد!\n\n📦 کد پیگیری: %s\n💰 مبلغ قابل پرداخت: %d تومان\n\n━━━━━━━━━━━━━━━\n💳 اطلاعات حساب:\n🏦 بانک: %s\n👤 صاحب حساب: %s\n💳 شماره حساب: %s\n💳 شبا: %s\n━━━━━━━━━━━━━━━\n\n📸 لطفاً پس از واریز، عکس رسید را ارسال کنید.",
		en: "✅ Your order has been registered!\n\n📦 Tracking number: %s\n💰 Amount: %d Toman\n\n━━━━━━━━━━━━━━━\n💳 Account information:\n🏦 Bank: %s\n👤 Account holder: %s\n💳 Account number: %s\n💳 IBAN: %s\n━━━━━━━━━━━━━━━\n\n📸 Please send the receipt photo after payment.",
	},
	"order.create_failed": {
		fa: "❌ خطایی در ثبت سفارش رخ داد.",
		en: "❌ Error creating order.",
	},
	"order.insufficient_stock": {
		fa: "❌ موجودی محصول «%s» کافی نیست.",
		en: "❌ Insufficient stock for product %q.",
	},
	"order.status_updated": {
		fa: "📋 وضعیت سفارش #%d به‌روز شد: %s",
		en: "📋 Order status #%d has been updated: %s",
	},

	// Receipt upload
	"receipt.received": {
		fa: "✅ رسید شما دریافت شد!\n\nسفارش شما در حال بررسی است و پس از تایید پرداخت، به شما اطلاع داده خواهد شد.\n\nاز خرید شما متشکریم! 🙏",
		en: "✅ Receipt received!\n\nYour order is being reviewed and you will be notified after payment confirmation.\n\nThank you for your purchase! 🙏",
	},
	"receipt.failed": {
		fa: "❌ خطایی در آپلود رسید رخ داد.",
		en: "❌ Error uploading receipt.",
	},
	"receipt.approve_btn": {
		fa: "✅ تایید پرداخت",
		en: "✅ Approve payment",
	},
	"receipt.reject_btn": {
		fa: "❌ رد پرداخت",
		en: "❌ Reject payment",
	},
	"receipt.payment_approved": {
		fa: "✅ پرداخت شما تایید شد! سفارش شما به‌زودی ارسال می‌شود.",
		en: "✅ Your payment has been approved! Your order will be shipped soon.",
	},
	"receipt.payment_rejected": {
		fa: "❌ پرداخت شما تایید نشد. لطفاً با پشتیبانی تماس بگیرید.",
		en: "❌ Your payment was not approved. Please contact support.",
	},

	// Profile editing
	"profile.ask_name": {
		fa: "👤 نام و نام خانوادگی خود را وارد کنید:",
		en: "👤 Enter your full name:",
	},
	"profile.ask_phone": {
		fa: "📞 شماره تلفن خود را وارد کنید:",
		en: "📞 Enter your phone number:",
	},
	"profile.ask_email": {
		fa: "📧 ایمیل خود را وارد کنید:",
		en: "📧 Enter your email:",
	},
	"profile.ask_address": {
		fa: "📍 آدرس خود را وارد کنید:",
		en: "📍 Enter your address:",
	},
	"profile.empty": {
		fa: "❌ مقدار نمی‌تواند خالی باشد.",
		en: "❌ The value cannot be empty.",
	},
	"profile.saved": {
		fa: "✅ اطلاعات شما ذخیره شد.",
		en: "✅ Your information has been saved.",
	},

	// Product feedback
	"feedback.btn": {
		fa: "⭐ ثبت نظر",
		en: "⭐ Leave feedback",
	},
	"feedback.ask_rating": {
		fa: "⭐ به «%s» چه امتیازی می‌دهید؟",
		en: "⭐ How do you rate %q?",
	},
	"feedback.ask_comment": {
		fa: "📝 نظر خود را بنویسید (اختیاری، برای رد شدن «-» بفرستید):",
		en: "📝 Write your comment (optional, send \"-\" to skip):",
	},
	"feedback.saved": {
		fa: "✅ نظر شما ثبت شد. متشکریم!",
		en: "✅ Your feedback has been saved. Thank you!",
	},

	// Help flow
	"help.prompt": {
		fa: "🆘 راهنما\nاگر سوالی دارید، پیام خود را بنویسید:",
		en: "🆘 Help\nIf you have any questions, write your message:",
	},
	"help.empty": {
		fa: "لطفاً پیام خود را بنویسید.",
		en: "Please write a message.",
	},
	"help.sent": {
		fa: "پیام شما به مدیر ارسال شد. به زودی پاسخ دریافت خواهید کرد!",
		en: "Your message has been sent to the administrator. You will receive a response soon!",
	},
	"help.admin_unreachable": {
		fa: "خطا در ارسال پیام: مدیر چت را با ربات شروع نکرده است.",
		en: "Sending error: the administrator has not started a chat with the bot.",
	},

	// Storefront menus
	"menu.categories": {fa: "🛍 محصولات", en: "🛍 Products"},
	"menu.cart":       {fa: "🛒 سبد خرید", en: "🛒 Cart"},
	"menu.orders":     {fa: "📦 سفارش‌های من", en: "📦 My orders"},
	"menu.profile":    {fa: "👤 پروفایل", en: "👤 Profile"},
	"menu.help":       {fa: "🆘 راهنما", en: "🆘 Help"},

	"profile.view": {
		fa: "👤 پروفایل شما:\n\nنام: %s\nتلفن: %s\nایمیل: %s\nآدرس: %s\n\nکدام مورد را ویرایش می‌کنید؟",
		en: "👤 Your profile:\n\nName: %s\nPhone: %s\nEmail: %s\nAddress: %s\n\nWhich field do you want to edit?",
	},
	"profile.field_name":    {fa: "👤 نام", en: "👤 Name"},
	"profile.field_phone":   {fa: "📞 تلفن", en: "📞 Phone"},
	"profile.field_email":   {fa: "📧 ایمیل", en: "📧 Email"},
	"profile.field_address": {fa: "📍 آدرس", en: "📍 Address"},
	"menu.admin_add_product":  {fa: "➕ افزودن محصول", en: "➕ Add product"},
	"menu.admin_edit_product": {fa: "✏️ ویرایش محصول", en: "✏️ Edit product"},
	"menu.admin_orders":       {fa: "📋 سفارش‌ها", en: "📋 Orders"},
	"menu.admin_stats":        {fa: "📈 آمار", en: "📈 Stats"},

	"catalog.categories": {fa: "📁 دسته‌بندی‌ها:", en: "📁 Categories:"},
	"catalog.products":   {fa: "📦 لیست محصولات:", en: "📦 Products:"},
	"catalog.back":       {fa: "🔙 بازگشت به دسته‌بندی‌ها", en: "🔙 Back to Categories"},
	"catalog.add_to_cart": {fa: "➕ افزودن به سبد خرید", en: "➕ Add to cart"},
	"catalog.added":       {fa: "✅ محصول به سبد خرید اضافه شد.", en: "✅ Product added to cart."},
	"catalog.empty":       {fa: "فعلاً محصولی موجود نیست.", en: "No products available yet."},
	"catalog.unavailable": {fa: "❌ این محصول در حال حاضر موجود نیست.", en: "❌ This product is currently unavailable."},

	"cart.view":      {fa: "🛒 سبد خرید شما:\n\n%s\n💰 مجموع: %d تومان", en: "🛒 Your cart:\n\n%s\n💰 Total: %d Toman"},
	"cart.place_btn": {fa: "📦 ثبت سفارش", en: "📦 Place order"},
	"cart.clear_btn": {fa: "🗑 خالی کردن سبد", en: "🗑 Clear cart"},
	"cart.cleared":   {fa: "سبد خرید خالی شد.", en: "Cart cleared."},

	"catalog.product_caption": {
		fa: "📦 %s\n💰 %d تومان\n\n%s\n\n📊 موجودی: %d",
		en: "📦 %s\n💰 %d Toman\n\n%s\n\n📊 Stock: %d",
	},

	"orders.empty": {fa: "شما هنوز سفارشی ثبت نکرده‌اید.", en: "You have no orders yet."},

	"status.pending":             {fa: "در انتظار پرداخت", en: "awaiting payment"},
	"status.paid":                {fa: "در انتظار تایید پرداخت", en: "payment under review"},
	"status.payment_validated":   {fa: "پرداخت تایید شد", en: "payment approved"},
	"status.payment_invalidated": {fa: "پرداخت رد شد", en: "payment rejected"},
	"status.shipped":             {fa: "ارسال شده", en: "shipped"},
	"status.delivered":           {fa: "تحویل داده شده", en: "delivered"},
	"status.cancelled":           {fa: "لغو شده", en: "cancelled"},
	"orders.line":  {fa: "📦 سفارش #%d — %d تومان — %s\nکد پیگیری: %s", en: "📦 Order #%d — %d Toman — %s\nTracking: %s"},

	"start.welcome": {
		fa: "به فروشگاه ما خوش آمدید! 🛍",
		en: "Welcome to our store! 🛍",
	},
	"start.choose_language": {
		fa: "زبان خود را انتخاب کنید:",
		en: "Choose your language:",
	},
	"contact.saved": {
		fa: "✅ شماره تلفن شما ذخیره شد: %s",
		en: "✅ Your phone number has been saved: %s",
	},
	"contact.own_only": {
		fa: "شما فقط می‌توانید شماره تلفن خود را به اشتراک بگذارید.",
		en: "You can only share your own phone number.",
	},

	"receipt.admin_caption": {
		fa: "💳 رسید پرداخت جدید\n\n📦 سفارش #%d\nکد پیگیری: %s\n💰 مبلغ: %d تومان\n👤 کاربر: %d",
		en: "💳 New payment receipt\n\n📦 Order #%d\nTracking: %s\n💰 Amount: %d Toman\n👤 User: %d",
	},

	"stats.report": {
		fa: "📈 آمار فروشگاه\n\n👥 کاربران: %d\n📦 سفارش‌ها: %d (در انتظار: %d)\n💰 درآمد این ماه: %d تومان\n💰 درآمد امسال: %d تومان",
		en: "📈 Store statistics\n\n👥 Users: %d\n📦 Orders: %d (pending: %d)\n💰 Revenue this month: %d Toman\n💰 Revenue this year: %d Toman",
	},
}
