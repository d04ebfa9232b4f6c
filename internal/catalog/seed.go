package catalog

import "shopapp/internal/domain/model"

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

// Seed は初期カタログを返す（リモート取得のスタンドイン）。
// 呼び出しごとに新しいスライスを返す。
func Seed() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Smartphone XPro",
			Price:       599.99,
			Image:       "assets/images/iPhone_17_Pro.jpg",
			Description: "Último modelo con cámara de alta resolución y procesador de última generación",
			Category:    "Electronics",
			Stock:       int64p(25),
			Rating:      float64p(4.8),
			Featured:    true,
		},
		{
			ID:            "2",
			Name:          "Laptop UltraBook",
			Price:         1299.99,
			Image:         "assets/images/Mcbook.jpg",
			Description:   "Potente procesador y diseño ultradelgado, perfecta para trabajo y entretenimiento",
			Category:      "Computers",
			Stock:         int64p(15),
			Rating:        float64p(4.9),
			Featured:      true,
			Discount:      float64p(10),
			OriginalPrice: float64p(1444.43),
		},
		{
			ID:          "3",
			Name:        "Auriculares Pro",
			Price:       199.99,
			Image:       "assets/images/Airpods.jpeg",
			Description: "Cancelación de ruido activa y sonido de alta calidad",
			Category:    "Audio",
			Stock:       int64p(50),
			Rating:      float64p(4.7),
		},
		{
			ID:          "4",
			Name:        "Smartwatch Elite",
			Price:       349.99,
			Image:       "assets/images/AppleWatch.jpg",
			Description: "Monitor de salud y fitness avanzado con GPS integrado",
			Category:    "Wearables",
			Stock:       int64p(30),
			Rating:      float64p(4.6),
			Featured:    true,
		},
		{
			ID:          "5",
			Name:        "Tablet Max",
			Price:       799.99,
			Image:       "assets/images/Ipad.jpg",
			Description: "Pantalla retina de 12 pulgadas con soporte para Apple Pencil",
			Category:    "Electronics",
			Stock:       int64p(20),
			Rating:      float64p(4.8),
		},
		{
			ID:          "6",
			Name:        "Cámara Digital",
			Price:       899.99,
			Image:       "assets/images/AppleCamera.jpeg",
			Description: "24MP con grabación 4K y lentes intercambiables",
			Category:    "Photography",
			Stock:       int64p(12),
			Rating:      float64p(4.9),
			Featured:    true,
		},
		{
			ID:          "7",
			Name:        "Gaming Mouse Pro",
			Price:       79.99,
			Image:       "assets/images/Mouse_gamer.jpg",
			Description: "Mouse gaming con 12000 DPI y iluminación RGB personalizable",
			Category:    "Gaming",
			Stock:       int64p(75),
			Rating:      float64p(4.5),
		},
		{
			ID:          "8",
			Name:        "Mechanical Keyboard",
			Price:       149.99,
			Image:       "assets/images/Keyboard.jpg",
			Description: "Teclado mecánico con switches Cherry MX y retroiluminación",
			Category:    "Gaming",
			Stock:       int64p(40),
			Rating:      float64p(4.7),
		},
		{
			ID:          "9",
			Name:        "Wireless Charger",
			Price:       39.99,
			Image:       "assets/images/WirelessCharger.jpeg",
			Description: "Cargador inalámbrico rápido compatible con Qi",
			Category:    "Accessories",
			Stock:       int64p(100),
			Rating:      float64p(4.3),
		},
		{
			ID:            "10",
			Name:          "Bluetooth Speaker",
			Price:         129.99,
			Image:         "assets/images/BluetoothSpeaker.jpg",
			Description:   "Altavoz portátil resistente al agua con 20 horas de batería",
			Category:      "Audio",
			Stock:         int64p(60),
			Rating:        float64p(4.6),
			Discount:      float64p(15),
			OriginalPrice: float64p(152.93),
		},
	}
}
